package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntensity(t *testing.T) {
	tests := []struct {
		speed int
		want  WindIntensity
	}{
		{0, Calm},
		{4, Calm},
		{5, Breezy},
		{14, Breezy},
		{15, Windy},
		{24, Windy},
		{25, StrongWinds},
		{38, StrongWinds},
		{39, GaleForce},
		{54, GaleForce},
		{55, StormForce},
		{120, StormForce},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIntensity(tt.speed), "speed %d", tt.speed)
	}
}

func TestIntensityRank(t *testing.T) {
	assert.Equal(t, 0, IntensityRank(Calm))
	assert.Equal(t, 3, IntensityRank(StrongWinds))
	assert.Equal(t, 5, IntensityRank(StormForce))
	assert.Equal(t, -1, IntensityRank(WindIntensity("Zephyr")))
}

func TestDirectionFromAngle(t *testing.T) {
	assert.Equal(t, North, DirectionFromAngle(0))
	assert.Equal(t, North, DirectionFromAngle(350))
	assert.Equal(t, NorthEast, DirectionFromAngle(30))
	assert.Equal(t, NorthWest, DirectionFromAngle(-45))
	assert.Equal(t, South, DirectionFromAngle(540))
	assert.InDelta(t, 270, DirectionAngle(West), 0)
}

func TestWindModel_NextSpeedNeverNegative(t *testing.T) {
	m := NewWindModel()
	// Jitter draw 0 maps to -3 mph.
	r := &scriptedRoller{t: t, ints: []int{0}}

	assert.Equal(t, 0, m.NextSpeed(1, 0, r))
}

func TestWindModel_NextSpeedCapsChange(t *testing.T) {
	m := NewWindModel()
	// Jitter draw 3 is zero noise.
	r := &scriptedRoller{t: t, ints: []int{3, 3}}

	assert.Equal(t, 10, m.NextSpeed(5, 50, r))
	assert.Equal(t, 45, m.NextSpeed(50, 0, r))
}

func TestWindModel_NextDirection(t *testing.T) {
	m := NewWindModel()

	keep := &scriptedRoller{t: t, floats: []float64{0.9}}
	assert.Equal(t, East, m.NextDirection(East, keep))

	left := &scriptedRoller{t: t, floats: []float64{0.1}, ints: []int{0}}
	assert.Equal(t, NorthWest, m.NextDirection(North, left))

	right := &scriptedRoller{t: t, floats: []float64{0.1}, ints: []int{2}}
	assert.Equal(t, North, m.NextDirection(NorthWest, right))

	unknown := &scriptedRoller{t: t, ints: []int{4}}
	assert.Equal(t, South, m.NextDirection(WindDirection("up"), unknown))
}

func TestWindModel_TargetSpeed(t *testing.T) {
	m := NewWindModel()
	c := DefaultCatalog()

	assert.Equal(t, 50, m.TargetSpeed(c, Sandstorm))
	assert.Equal(t, 5, m.TargetSpeed(c, Condition("Aurora")))
	assert.Equal(t, 5, m.TargetSpeed(nil, Blizzard))
}
