package forecast

import (
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
)

const (
	// Horizon is the minimum number of future hours kept buffered per region.
	Horizon = 24

	maxChunkHours = 8
)

// Generators bundles the models every engine shares. They hold only static
// configuration, so one value serves all regions.
type Generators struct {
	Catalog     *domain.Catalog
	Conditions  *domain.ConditionModel
	Temperature *domain.TemperatureModel
	Wind        *domain.WindModel
}

// NewGenerators builds the models over catalog. A nil catalog uses the
// built-in climate data.
func NewGenerators(catalog *domain.Catalog, persistence bool) *Generators {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	return &Generators{
		Catalog:     catalog,
		Conditions:  domain.NewConditionModel(persistence),
		Temperature: domain.NewTemperatureModel(catalog),
		Wind:        domain.NewWindModel(),
	}
}

// EngineState is the mutable simulation state of one region, positioned at the
// last generated hour.
type EngineState struct {
	domain.ConditionState
	WindDirection  domain.WindDirection `json:"wind_direction"`
	WindSpeed      int                  `json:"wind_speed"`
	Temperature    int                  `json:"temperature"`
	HasTemperature bool                 `json:"-"`
}

// GenerationReport summarizes what one Initialize or AdvanceTime call produced.
type GenerationReport struct {
	Hours         int
	Steps         []domain.StepOutcome
	ShootingStars int
	MeteorImpacts int
}

// Engine owns one region's condition state machine and forecast buffer.
// It is not safe for concurrent use; Service serializes access.
type Engine struct {
	region domain.Region
	season domain.Season
	gen    *Generators
	rng    domain.Roller

	state       EngineState
	queue       []domain.ForecastHour
	next        time.Time
	initialized bool
	report      GenerationReport
}

// NewEngine creates an uninitialized engine for region.
func NewEngine(region domain.Region, gen *Generators, rng domain.Roller) *Engine {
	return &Engine{region: region, season: domain.SeasonAuto, gen: gen, rng: rng}
}

// Initialize resets the engine at date and fills the buffer. The first chunk
// keeps the freshly drawn condition; later chunks run the condition step.
func (e *Engine) Initialize(biome domain.Biome, season domain.Season, date time.Time) domain.ForecastHour {
	e.region.Biome = biome
	if season == "" {
		season = domain.SeasonAuto
	}
	e.season = season
	e.report = GenerationReport{}

	start := domain.StartOfHour(date)
	cond := e.table(start).Draw(domain.RollDie(e.rng, 100))
	e.state = EngineState{
		ConditionState: domain.ConditionState{Condition: cond},
		WindDirection:  e.gen.Wind.RandomDirection(e.rng),
		WindSpeed:      e.gen.Wind.TargetSpeed(e.gen.Catalog, cond),
	}
	e.queue = make([]domain.ForecastHour, 0, Horizon+maxChunkHours)
	e.next = start
	e.initialized = true

	e.emitChunk(e.chunkLength())
	e.fill()
	return e.queue[0]
}

// AdvanceTime drops hours from the front of the buffer and refills it. When
// hours exhausts the buffer, generation resumes at the advanced date.
// Returns false if the engine was never initialized.
func (e *Engine) AdvanceTime(hours int) (domain.ForecastHour, bool) {
	if !e.initialized {
		return domain.ForecastHour{}, false
	}
	e.report = GenerationReport{}
	if hours < 0 {
		hours = 0
	}

	head := e.queue[0].Date
	if hours >= len(e.queue) {
		e.queue = e.queue[:0]
		e.next = head.Add(time.Duration(hours) * time.Hour)
	} else {
		kept := make([]domain.ForecastHour, len(e.queue)-hours, Horizon+maxChunkHours)
		copy(kept, e.queue[hours:])
		e.queue = kept
	}

	e.fill()
	return e.queue[0], true
}

// Get24HourForecast returns a copy of the next Horizon hours.
func (e *Engine) Get24HourForecast() []domain.ForecastHour {
	n := min(Horizon, len(e.queue))
	return append([]domain.ForecastHour(nil), e.queue[:n]...)
}

// Forecast returns a copy of the whole buffer.
func (e *Engine) Forecast() []domain.ForecastHour {
	return append([]domain.ForecastHour(nil), e.queue...)
}

// Current returns the hour at the head of the buffer.
func (e *Engine) Current() (domain.ForecastHour, bool) {
	if len(e.queue) == 0 {
		return domain.ForecastHour{}, false
	}
	return e.queue[0], true
}

func (e *Engine) Region() domain.Region    { return e.region }
func (e *Engine) Season() domain.Season    { return e.season }
func (e *Engine) State() EngineState       { return e.state }
func (e *Engine) Initialized() bool        { return e.initialized }
func (e *Engine) Report() GenerationReport { return e.report }

// fill appends chunks until the horizon is restored.
func (e *Engine) fill() {
	for len(e.queue) < Horizon {
		next, outcome := e.gen.Conditions.Step(e.state.ConditionState, e.table(e.next), e.rng)
		e.state.ConditionState = next
		e.report.Steps = append(e.report.Steps, outcome)
		e.emitChunk(e.chunkLength())
	}
}

// emitChunk generates n consecutive hours sharing the current condition.
// Each emitted hour adds one energy.
func (e *Engine) emitChunk(n int) {
	for range n {
		e.queue = append(e.queue, e.generateHour(e.next))
		e.state.Energy++
		e.next = e.next.Add(time.Hour)
	}
}

func (e *Engine) generateHour(date time.Time) domain.ForecastHour {
	season := e.season.Resolve(date)
	cond := e.state.Condition

	temp := e.gen.Temperature.Generate(cond, e.region.Biome, season, date.Hour(), e.rng)
	if e.state.HasTemperature {
		temp = e.gen.Temperature.Smooth(e.state.Temperature, temp)
	}

	dir := e.gen.Wind.NextDirection(e.state.WindDirection, e.rng)
	speed := e.gen.Wind.NextSpeed(e.state.WindSpeed, e.gen.Wind.TargetSpeed(e.gen.Catalog, cond), e.rng)
	intensity := domain.ClassifyIntensity(speed)
	events := domain.RollCelestial(e.rng)

	e.state.Temperature = temp
	e.state.HasTemperature = true
	e.state.WindDirection = dir
	e.state.WindSpeed = speed

	e.report.Hours++
	if events.MeteorImpact {
		e.report.MeteorImpacts++
	} else if events.ShootingStar {
		e.report.ShootingStars++
	}

	return domain.ForecastHour{
		Date:            date,
		Hour:            date.Hour(),
		Condition:       cond,
		Temperature:     temp,
		WindDirection:   dir,
		WindSpeed:       speed,
		WindIntensity:   intensity,
		EffectsText:     domain.ComposeEffects(cond, intensity, events),
		HasShootingStar: events.ShootingStar,
		HasMeteorImpact: events.MeteorImpact,
	}
}

func (e *Engine) table(date time.Time) domain.ClimateTable {
	return e.gen.Catalog.ClimateForBiome(e.region.Biome, e.season.Resolve(date))
}

func (e *Engine) chunkLength() int {
	return domain.RollDie(e.rng, maxChunkHours)
}
