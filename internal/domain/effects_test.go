package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestRollCelestial(t *testing.T) {
	tests := []struct {
		name  string
		rolls []int
		want  CelestialEvents
	}{
		{"nothing", faces(2), CelestialEvents{}},
		{"shooting star", faces(1, 2), CelestialEvents{ShootingStar: true}},
		{"meteor impact", faces(1, 1), CelestialEvents{ShootingStar: true, MeteorImpact: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedRoller{t: t, ints: tt.rolls}
			assert.Equal(t, tt.want, RollCelestial(r))
			assert.Empty(t, r.ints)
		})
	}
}

func TestComposeEffects(t *testing.T) {
	calm := ComposeEffects(ClearSkies, Calm, CelestialEvents{})
	assert.Equal(t, "No weather effects.", calm)

	storm := ComposeEffects(Thunderstorm, GaleForce, CelestialEvents{ShootingStar: true})
	assert.True(t, strings.HasPrefix(storm, ConditionEffect(Thunderstorm)+" "))
	assert.Contains(t, storm, WindEffect(GaleForce))
	assert.True(t, strings.HasSuffix(storm, shootingStarText))

	meteor := ComposeEffects(Snow, Windy, CelestialEvents{ShootingStar: true, MeteorImpact: true})
	assert.Contains(t, meteor, meteorImpactText)
	assert.NotContains(t, meteor, shootingStarText)
}

func TestEffects_EveryConditionHasText(t *testing.T) {
	for _, cond := range []Condition{
		ClearSkies, LightClouds, HeavyClouds, Fog, Rain, HeavyRain, Thunderstorm,
		Snow, Blizzard, FreezingCold, ColdWinds, ScorchingHeat, HumidHaze, Sandstorm,
	} {
		assert.NotEmpty(t, conditionEffects[cond], "%s", cond)
	}
	assert.Equal(t, ConditionEffect(DefaultCondition), ConditionEffect(Condition("Aurora")))
	assert.Empty(t, WindEffect(Windy))
}

func TestStartOfHour(t *testing.T) {
	fixed := time.Date(1492, time.May, 1, 9, 41, 12, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	assert.Equal(t, time.Date(1492, time.May, 1, 9, 0, 0, 0, time.UTC), StartOfHour(time.Time{}))

	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, time.Date(1492, time.May, 1, 14, 0, 0, 0, time.UTC), StartOfHour(time.Date(1492, time.May, 1, 9, 30, 0, 0, est)))
}
