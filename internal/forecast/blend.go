package forecast

import (
	"math"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
)

// DefaultTransitionHours is the simulated length of a journey between regions.
const DefaultTransitionHours = 12

const (
	climateChangingNote = "The climate is beginning to change as you travel."
	mixedWeatherNote    = "You are traveling through a mixture of weather."
	almostThereNote     = "You are almost at your destination."
)

// TransitionState tracks one journey from Source to Target.
type TransitionState struct {
	Source        domain.Region
	Target        domain.Region
	Progress      float64
	DurationHours int
	// ElapsedHours is the integer source of Progress.
	ElapsedHours  int
}

// NewTransition starts a journey at progress 0. Non-positive durations use
// DefaultTransitionHours.
func NewTransition(source, target domain.Region, durationHours int) *TransitionState {
	if durationHours <= 0 {
		durationHours = DefaultTransitionHours
	}
	return &TransitionState{Source: source, Target: target, DurationHours: durationHours}
}

// Advance moves progress forward by hours/DurationHours, clamped to [0, 1].
// Negative hours are ignored so progress never decreases.
func (t *TransitionState) Advance(hours int) float64 {
	if hours > 0 {
		t.ElapsedHours = min(t.ElapsedHours+hours, t.DurationHours)
		t.Progress = float64(t.ElapsedHours) / float64(t.DurationHours)
	}
	return t.Progress
}

// Complete reports whether the party has arrived.
func (t *TransitionState) Complete() bool {
	return t.ElapsedHours >= t.DurationHours
}

// RemainingHours is the number of whole hours left on the road.
func (t *TransitionState) RemainingHours() int {
	return t.DurationHours - t.ElapsedHours
}

// TransitionInfo is the caller-facing view of an active journey.
type TransitionInfo struct {
	SourceRegion   domain.Region `json:"source_region"`
	TargetRegion   domain.Region `json:"target_region"`
	Progress       float64       `json:"progress"`
	RemainingHours int           `json:"remaining_hours"`
}

// Info snapshots the state for callers.
func (t *TransitionState) Info() TransitionInfo {
	return TransitionInfo{
		SourceRegion:   t.Source,
		TargetRegion:   t.Target,
		Progress:       t.Progress,
		RemainingHours: t.RemainingHours(),
	}
}

// Blend merges two forecasts hour by hour over the shorter of the two. Neither
// input is modified.
func Blend(source, target []domain.ForecastHour, progress float64, r domain.Roller) []domain.ForecastHour {
	progress = math.Max(0, math.Min(1, progress))
	n := min(len(source), len(target))
	out := make([]domain.ForecastHour, n)
	for i := range n {
		out[i] = BlendHour(source[i], target[i], progress, r)
	}
	return out
}

// BlendHour interpolates one pair of hours. The condition is a fresh coin flip
// weighted by progress on every call.
func BlendHour(src, dst domain.ForecastHour, progress float64, r domain.Roller) domain.ForecastHour {
	chosen := src
	if r.Float64() < progress {
		chosen = dst
	}

	speed := lerpRound(src.WindSpeed, dst.WindSpeed, progress)
	if speed < 0 {
		speed = 0
	}
	p := progress

	return domain.ForecastHour{
		Date:               src.Date,
		Hour:               src.Hour,
		Condition:          chosen.Condition,
		Temperature:        lerpRound(src.Temperature, dst.Temperature, progress),
		WindDirection:      BlendDirection(src.WindDirection, dst.WindDirection, progress),
		WindSpeed:          speed,
		WindIntensity:      domain.ClassifyIntensity(speed),
		EffectsText:        blendNarrative(src, dst, chosen, progress),
		HasShootingStar:    src.HasShootingStar || dst.HasShootingStar,
		HasMeteorImpact:    src.HasMeteorImpact || dst.HasMeteorImpact,
		IsTransitional:     true,
		TransitionProgress: &p,
	}
}

// BlendDirection rotates from a toward b along the shorter arc and rounds the
// result to the nearest octant.
func BlendDirection(a, b domain.WindDirection, progress float64) domain.WindDirection {
	from := domain.DirectionAngle(a)
	diff := domain.DirectionAngle(b) - from
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	return domain.DirectionFromAngle(from + diff*progress)
}

func blendNarrative(src, dst, chosen domain.ForecastHour, progress float64) string {
	switch {
	case progress < 0.25:
		return src.EffectsText + " " + climateChangingNote
	case progress < 0.75:
		return mixedWeatherNote + " " + chosen.EffectsText
	default:
		return dst.EffectsText + " " + almostThereNote
	}
}

func lerpRound(a, b int, t float64) int {
	return int(math.Round(float64(a)*(1-t) + float64(b)*t))
}
