package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureModel_Smooth(t *testing.T) {
	m := NewTemperatureModel(DefaultCatalog())

	assert.Equal(t, 65, m.Smooth(60, 90))
	assert.Equal(t, 55, m.Smooth(60, 20))
	assert.Equal(t, 62, m.Smooth(60, 62))
	assert.Equal(t, 60, m.Smooth(60, 60))
}

func TestTemperatureModel_GenerateWithinRange(t *testing.T) {
	c := DefaultCatalog()
	m := NewTemperatureModel(c)
	r := NewSeededRoller(3, "temperature")
	rng := c.Temperatures[TempKey{BiomeDesert, SeasonSummer, ScorchingHeat}]

	for hour := range 24 {
		got := m.Generate(ScorchingHeat, BiomeDesert, SeasonSummer, hour, r)
		assert.GreaterOrEqual(t, got, rng.Min+DiurnalOffset(hour))
		assert.LessOrEqual(t, got, rng.Max+DiurnalOffset(hour))
	}
}

func TestTemperatureModel_MissingRangeUsesDefault(t *testing.T) {
	m := NewTemperatureModel(DefaultCatalog())
	// No randomness is consumed without a range.
	r := &scriptedRoller{t: t}

	assert.Equal(t, DefaultTemperature+DiurnalOffset(14), m.Generate(Blizzard, Biome("astral"), SeasonWinter, 14, r))
}

func TestDiurnalOffset_Wraps(t *testing.T) {
	assert.Equal(t, DiurnalOffset(0), DiurnalOffset(24))
	assert.Equal(t, DiurnalOffset(23), DiurnalOffset(-1))
	assert.Less(t, DiurnalOffset(4), DiurnalOffset(14))
}
