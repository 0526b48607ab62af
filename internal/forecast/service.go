package forecast

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"github.com/couchcryptid/fantasy-weather-service/internal/observability"
)

// RollerFactory returns the random source for a region id. The blender asks
// for the reserved salt "transition".
type RollerFactory func(salt string) domain.Roller

// SeededRollers derives every roller from one seed so whole runs replay.
func SeededRollers(seed int64) RollerFactory {
	return func(salt string) domain.Roller {
		return domain.NewSeededRoller(seed, salt)
	}
}

// Options configures a Service.
type Options struct {
	Generators      *Generators
	Rollers         RollerFactory
	TransitionHours int
}

// Service is the orchestrator callers talk to. It owns the region registry
// (one engine per region id) and the single active journey.
type Service struct {
	mu sync.Mutex

	gen             *Generators
	rollers         RollerFactory
	blendRoller     domain.Roller
	transitionHours int

	engines    map[string]*Engine
	transition *TransitionState

	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a Service with an empty registry.
func NewService(opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if opts.Generators == nil {
		opts.Generators = NewGenerators(nil, true)
	}
	if opts.Rollers == nil {
		opts.Rollers = SeededRollers(time.Now().UnixNano())
	}
	if opts.TransitionHours <= 0 {
		opts.TransitionHours = DefaultTransitionHours
	}
	return &Service{
		gen:             opts.Generators,
		rollers:         opts.Rollers,
		blendRoller:     opts.Rollers("transition"),
		transitionHours: opts.TransitionHours,
		engines:         make(map[string]*Engine),
		logger:          logger,
		metrics:         metrics,
	}
}

// Initialize (re)starts region's forecast at date with the season derived
// from the calendar.
func (s *Service) Initialize(region domain.Region, date time.Time) []domain.ForecastHour {
	return s.InitializeSeason(region, domain.SeasonAuto, date)
}

// InitializeSeason is Initialize with a fixed season.
func (s *Service) InitializeSeason(region domain.Region, season domain.Season, date time.Time) []domain.ForecastHour {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.initialize(region, season, date)
	return e.Forecast()
}

// AdvanceTime moves region forward by hours. date is the caller's advanced
// simulated date; a mismatch with the buffer head is logged, not corrected.
// Uninitialized regions return an empty forecast.
func (s *Service) AdvanceTime(region domain.Region, hours int, date time.Time) []domain.ForecastHour {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines[region.ID]
	if !ok || !e.Initialized() {
		s.logger.Debug("advance on uninitialized region", "region", region.ID)
		return []domain.ForecastHour{}
	}
	current := s.advance(e, hours)
	if !date.IsZero() && !current.Date.Equal(domain.StartOfHour(date)) {
		s.logger.Warn("region clock drift",
			"region", region.ID,
			"forecast_head", current.Date,
			"caller_date", date,
		)
	}
	return e.Forecast()
}

// RegionForecast returns the buffered hours of a region, or an empty slice.
func (s *Service) RegionForecast(id string) []domain.ForecastHour {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines[id]
	if !ok {
		return []domain.ForecastHour{}
	}
	return e.Forecast()
}

// Region24Hours returns the next 24 hours of a region, or an empty slice.
func (s *Service) Region24Hours(id string) []domain.ForecastHour {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.engines[id]
	if !ok {
		return []domain.ForecastHour{}
	}
	return e.Get24HourForecast()
}

// Regions lists the registered regions sorted by id.
func (s *Service) Regions() []domain.Region {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Region, 0, len(s.engines))
	for _, id := range s.sortedIDs() {
		out = append(out, s.engines[id].Region())
	}
	return out
}

// StartTransition begins a journey. It fails, leaving all state untouched,
// when source and target are the same region. Either region is initialized
// on demand at the other's current hour.
func (s *Service) StartTransition(source, target domain.Region) ([]domain.ForecastHour, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if source.ID == target.ID {
		s.logger.Warn("rejected transition to the current region", "region", source.ID)
		return nil, false
	}

	anchor := s.anchorDate(source.ID, target.ID)
	src := s.ensure(source, anchor)
	dst := s.ensure(target, anchor)

	if s.transition != nil {
		s.logger.Info("replacing active transition",
			"source", s.transition.Source.ID,
			"target", s.transition.Target.ID,
		)
	}
	s.transition = NewTransition(src.Region(), dst.Region(), s.transitionHours)
	s.metrics.TransitionActive.Set(1)
	s.metrics.TransitionProgress.Set(0)
	s.logger.Info("transition started",
		"source", source.ID,
		"target", target.ID,
		"duration_hours", s.transition.DurationHours,
	)
	return s.blend(), true
}

// AdvanceTransition advances both regions of the journey and its progress.
// It returns false when no journey is active or when this call completed it;
// in the latter case the target region's forecast is current.
func (s *Service) AdvanceTransition(hours int) ([]domain.ForecastHour, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transition == nil {
		return nil, false
	}
	s.advance(s.engines[s.transition.Source.ID], hours)
	s.advance(s.engines[s.transition.Target.ID], hours)

	if s.stepTransition(hours) {
		return nil, false
	}
	return s.blend(), true
}

// EndTransition finishes the journey early and returns the target forecast.
// With no active journey it does nothing and returns nil.
func (s *Service) EndTransition() []domain.ForecastHour {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transition == nil {
		return nil
	}
	target := s.transition.Target.ID
	s.finishTransition("ended")
	return s.engines[target].Forecast()
}

// TransitionInfo describes the active journey, or nil.
func (s *Service) TransitionInfo() *TransitionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transition == nil {
		return nil
	}
	info := s.transition.Info()
	return &info
}

// TransitionWeather blends the two regions at the current progress, or
// returns nil when no journey is active.
func (s *Service) TransitionWeather() []domain.ForecastHour {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transition == nil {
		return nil
	}
	return s.blend()
}

// RegionHour is the current hour of one region.
type RegionHour struct {
	Region domain.Region
	Hour   domain.ForecastHour
}

// TravelHour is the blended current hour of an active journey.
type TravelHour struct {
	Source domain.Region
	Target domain.Region
	Hour   domain.ForecastHour
}

// TickResult is what one Tick produced.
type TickResult struct {
	Regions []RegionHour
	// Travel is set while a journey is active after the tick.
	Travel *TravelHour
	// Arrived is set when this tick completed a journey.
	Arrived *domain.Region
}

// Tick advances every region by hours in lockstep, then the journey, if any.
func (s *Service) Tick(hours int) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res TickResult
	for _, id := range s.sortedIDs() {
		e := s.engines[id]
		if !e.Initialized() {
			continue
		}
		res.Regions = append(res.Regions, RegionHour{Region: e.Region(), Hour: s.advance(e, hours)})
	}

	if s.transition != nil {
		source, target := s.transition.Source, s.transition.Target
		if s.stepTransition(hours) {
			res.Arrived = &target
		} else if blended := s.blend(); len(blended) > 0 {
			res.Travel = &TravelHour{Source: source, Target: target, Hour: blended[0]}
		}
	}
	return res
}

// initialize must be called with s.mu held.
func (s *Service) initialize(region domain.Region, season domain.Season, date time.Time) *Engine {
	e := s.lookupOrCreate(region)
	e.Initialize(region.Biome, season, date)
	s.record(e)
	s.logger.Info("region initialized",
		"region", region.ID,
		"biome", region.Biome,
		"season", season,
		"hours", len(e.queue),
	)
	return e
}

// ensure returns region's engine, initializing it at date when needed.
func (s *Service) ensure(region domain.Region, date time.Time) *Engine {
	if e, ok := s.engines[region.ID]; ok && e.Initialized() {
		return e
	}
	return s.initialize(region, domain.SeasonAuto, date)
}

// lookupOrCreate is the only place engines are created.
func (s *Service) lookupOrCreate(region domain.Region) *Engine {
	if e, ok := s.engines[region.ID]; ok {
		return e
	}
	e := NewEngine(region, s.gen, s.rollers(region.ID))
	s.engines[region.ID] = e
	s.metrics.RegionsActive.Set(float64(len(s.engines)))
	return e
}

func (s *Service) advance(e *Engine, hours int) domain.ForecastHour {
	current, _ := e.AdvanceTime(hours)
	s.record(e)
	return current
}

// stepTransition advances progress and reports whether the journey ended.
func (s *Service) stepTransition(hours int) bool {
	progress := s.transition.Advance(hours)
	s.metrics.TransitionProgress.Set(progress)
	if !s.transition.Complete() {
		return false
	}
	s.finishTransition("arrived")
	return true
}

func (s *Service) finishTransition(reason string) {
	s.logger.Info("transition finished",
		"source", s.transition.Source.ID,
		"target", s.transition.Target.ID,
		"progress", s.transition.Progress,
		"reason", reason,
	)
	s.transition = nil
	s.metrics.TransitionActive.Set(0)
	s.metrics.TransitionProgress.Set(0)
}

func (s *Service) blend() []domain.ForecastHour {
	src := s.engines[s.transition.Source.ID].queue
	dst := s.engines[s.transition.Target.ID].queue
	out := Blend(src, dst, s.transition.Progress, s.blendRoller)
	s.metrics.BlendedHours.Add(float64(len(out)))
	return out
}

// anchorDate picks the hour a newly initialized travel region starts at.
func (s *Service) anchorDate(ids ...string) time.Time {
	for _, id := range ids {
		if e, ok := s.engines[id]; ok {
			if cur, ok := e.Current(); ok {
				return cur.Date
			}
		}
	}
	return time.Time{}
}

func (s *Service) record(e *Engine) {
	r := e.Report()
	s.metrics.HoursGenerated.Add(float64(r.Hours))
	for _, step := range r.Steps {
		s.metrics.ConditionSteps.WithLabelValues(string(step.Cause)).Inc()
		if step.Changed() {
			s.metrics.ConditionChanges.Inc()
			s.logger.Debug("condition changed",
				"region", e.Region().ID,
				"from", step.From,
				"to", step.To,
				"cause", step.Cause,
				"roll", step.Roll,
			)
		}
	}
	if r.ShootingStars > 0 {
		s.metrics.CelestialEvents.WithLabelValues("shooting_star").Add(float64(r.ShootingStars))
	}
	if r.MeteorImpacts > 0 {
		s.metrics.CelestialEvents.WithLabelValues("meteor_impact").Add(float64(r.MeteorImpacts))
	}
}

func (s *Service) sortedIDs() []string {
	ids := make([]string, 0, len(s.engines))
	for id := range s.engines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
