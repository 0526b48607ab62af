package domain

import "math"

// WindDirection is one of the eight compass octants.
type WindDirection string

const (
	North     WindDirection = "N"
	NorthEast WindDirection = "NE"
	East      WindDirection = "E"
	SouthEast WindDirection = "SE"
	South     WindDirection = "S"
	SouthWest WindDirection = "SW"
	West      WindDirection = "W"
	NorthWest WindDirection = "NW"
)

// Directions lists the octants clockwise from north, 45 degrees apart.
var Directions = []WindDirection{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// WindIntensity is the display and gameplay tier of a wind speed.
type WindIntensity string

const (
	Calm        WindIntensity = "Calm"
	Breezy      WindIntensity = "Breezy"
	Windy       WindIntensity = "Windy"
	StrongWinds WindIntensity = "Strong Winds"
	GaleForce   WindIntensity = "Gale Force"
	StormForce  WindIntensity = "Storm Force"
)

// intensityTiers holds the exclusive upper bound (mph) of each tier.
var intensityTiers = []struct {
	below     int
	intensity WindIntensity
}{
	{5, Calm},
	{15, Breezy},
	{25, Windy},
	{39, StrongWinds},
	{55, GaleForce},
}

// ClassifyIntensity maps a speed in mph onto its tier.
func ClassifyIntensity(speed int) WindIntensity {
	for _, t := range intensityTiers {
		if speed < t.below {
			return t.intensity
		}
	}
	return StormForce
}

// IntensityRank orders tiers from 0 (Calm) to 5 (Storm Force); unknown is -1.
func IntensityRank(i WindIntensity) int {
	for n, t := range intensityTiers {
		if t.intensity == i {
			return n
		}
	}
	if i == StormForce {
		return len(intensityTiers)
	}
	return -1
}

// DirectionIndex returns the octant position of d, or -1.
func DirectionIndex(d WindDirection) int {
	for i, v := range Directions {
		if v == d {
			return i
		}
	}
	return -1
}

// DirectionAngle returns degrees clockwise from north.
func DirectionAngle(d WindDirection) float64 {
	idx := DirectionIndex(d)
	if idx < 0 {
		return 0
	}
	return float64(idx) * 45
}

// DirectionFromAngle rounds an angle in degrees to the nearest octant.
func DirectionFromAngle(deg float64) WindDirection {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Round(deg/45)) % len(Directions)
	return Directions[idx]
}

const (
	defaultChangeFrequency = 0.3
	defaultVariability     = 1
	defaultMaxSpeedChange  = 5
	defaultSpeedJitter     = 3
)

// WindModel evolves direction and speed hour by hour.
type WindModel struct {
	// ChangeFrequency is the chance per hour that direction may shift.
	ChangeFrequency float64
	// Variability scales a direction shift, in octants.
	Variability int
	// MaxSpeedChange caps the per-hour speed delta in mph.
	MaxSpeedChange int
	// Jitter is the +/- random noise added to each speed step.
	Jitter int
}

// NewWindModel returns a model with the default tuning.
func NewWindModel() *WindModel {
	return &WindModel{
		ChangeFrequency: defaultChangeFrequency,
		Variability:     defaultVariability,
		MaxSpeedChange:  defaultMaxSpeedChange,
		Jitter:          defaultSpeedJitter,
	}
}

// RandomDirection picks a uniformly random octant.
func (m *WindModel) RandomDirection(r Roller) WindDirection {
	return Directions[r.IntN(len(Directions))]
}

// NextDirection keeps current with probability 1-ChangeFrequency and otherwise
// shifts it by -1, 0 or +1 octants times Variability.
func (m *WindModel) NextDirection(current WindDirection, r Roller) WindDirection {
	idx := DirectionIndex(current)
	if idx < 0 {
		return m.RandomDirection(r)
	}
	if r.Float64() >= m.ChangeFrequency {
		return current
	}
	step := (r.IntN(3) - 1) * m.Variability
	n := len(Directions)
	return Directions[((idx+step)%n+n)%n]
}

// NextSpeed moves current toward target with jitter, limited to MaxSpeedChange
// per hour and never below zero.
func (m *WindModel) NextSpeed(current, target int, r Roller) int {
	delta := target - current
	if m.Jitter > 0 {
		delta += r.IntN(2*m.Jitter+1) - m.Jitter
	}
	next := current + clamp(delta, -m.MaxSpeedChange, m.MaxSpeedChange)
	if next < 0 {
		return 0
	}
	return next
}

// TargetSpeed returns the catalog's typical speed for c, defaulting to a light
// breeze for unknown conditions.
func (m *WindModel) TargetSpeed(c *Catalog, cond Condition) int {
	if c != nil {
		if v, ok := c.WindTargets[cond]; ok {
			return v
		}
	}
	return defaultWindTargets[DefaultCondition]
}
