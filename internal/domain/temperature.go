package domain

// DefaultTemperature is used when the catalog has no range for a lookup.
const DefaultTemperature = 70

// MaxTempChange is the largest hour-to-hour temperature swing, in degrees.
const MaxTempChange = 5

// diurnalOffset is added to a drawn temperature by hour of day: coldest just
// before dawn, warmest mid-afternoon.
var diurnalOffset = [24]int{
	-6, -7, -7, -8, -8, -7, -5, -3, -1, 1, 3, 5,
	6, 7, 7, 6, 5, 3, 1, 0, -1, -3, -4, -5,
}

// DiurnalOffset returns the hour-of-day adjustment. Hours wrap modulo 24.
func DiurnalOffset(hour int) int {
	return diurnalOffset[((hour%24)+24)%24]
}

// TemperatureModel produces hourly temperatures from a catalog.
type TemperatureModel struct {
	Catalog   *Catalog
	MaxChange int
}

// NewTemperatureModel returns a model with the default hourly change limit.
func NewTemperatureModel(c *Catalog) *TemperatureModel {
	return &TemperatureModel{Catalog: c, MaxChange: MaxTempChange}
}

// Range returns the configured range for the key, or false if none exists.
func (m *TemperatureModel) Range(biome Biome, season Season, c Condition) (TempRange, bool) {
	if m.Catalog == nil {
		return TempRange{}, false
	}
	r, ok := m.Catalog.Temperatures[TempKey{Biome: biome, Season: season, Condition: c}]
	return r, ok
}

// Generate draws the target temperature for one hour. A missing range yields
// DefaultTemperature before the diurnal offset is applied.
func (m *TemperatureModel) Generate(c Condition, biome Biome, season Season, hour int, r Roller) int {
	base := DefaultTemperature
	if rng, ok := m.Range(biome, season, c); ok {
		lo, hi := rng.Min, rng.Max
		if hi < lo {
			lo, hi = hi, lo
		}
		base = lo + r.IntN(hi-lo+1)
	}
	return base + DiurnalOffset(hour)
}

// Smooth moves previous toward target by at most MaxChange degrees.
func (m *TemperatureModel) Smooth(previous, target int) int {
	limit := m.MaxChange
	if limit <= 0 {
		limit = MaxTempChange
	}
	return previous + clamp(target-previous, -limit, limit)
}
