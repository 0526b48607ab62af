package domain

import "sort"

// ClimateEntry maps a d100 roll range to a condition.
type ClimateEntry struct {
	Condition Condition `yaml:"condition" json:"condition"`
	RollMin   int       `yaml:"min" json:"min"`
	RollMax   int       `yaml:"max" json:"max"`
}

// ClimateTable is ordered from the mildest condition to the most severe, so an
// entry's index doubles as its severity.
type ClimateTable []ClimateEntry

// IndexOf returns the severity index of c, or -1 if the table lacks it.
func (t ClimateTable) IndexOf(c Condition) int {
	for i, e := range t {
		if e.Condition == c {
			return i
		}
	}
	return -1
}

// Draw maps a 1-100 roll onto the table ranges. Rolls outside every range
// return DefaultCondition.
func (t ClimateTable) Draw(roll int) Condition {
	for _, e := range t {
		if roll >= e.RollMin && roll <= e.RollMax {
			return e.Condition
		}
	}
	return DefaultCondition
}

// TempRange is an inclusive Fahrenheit range.
type TempRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// TempKey identifies a temperature range.
type TempKey struct {
	Biome     Biome
	Season    Season
	Condition Condition
}

// Catalog holds every static lookup the generators read.
type Catalog struct {
	Tables       map[Biome]map[Season]ClimateTable
	Temperatures map[TempKey]TempRange
	WindTargets  map[Condition]int
}

// Table returns the climate table for {biome, season}.
func (c *Catalog) Table(biome Biome, season Season) (ClimateTable, bool) {
	seasons, ok := c.Tables[biome]
	if !ok {
		return nil, false
	}
	t, ok := seasons[season]
	return t, ok && len(t) > 0
}

// Biomes returns the catalog's biomes in sorted order.
func (c *Catalog) Biomes() []Biome {
	out := make([]Biome, 0, len(c.Tables))
	for b := range c.Tables {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClimateForBiome is the biome to climate table mapping handed to the engines.
// A missing {biome, season} pair yields a single-entry DefaultCondition table
// so a region always gets a forecast.
func (c *Catalog) ClimateForBiome(biome Biome, season Season) ClimateTable {
	if t, ok := c.Table(biome, season); ok {
		return t
	}
	return ClimateTable{{Condition: DefaultCondition, RollMin: 1, RollMax: 100}}
}

// seasonBase is the fair-weather range for a biome and season.
var seasonBase = map[Biome]map[Season]TempRange{
	BiomeTemperate: {
		SeasonSpring: {45, 65},
		SeasonSummer: {68, 88},
		SeasonFall:   {45, 65},
		SeasonWinter: {20, 40},
	},
	BiomeTropical: {
		SeasonSpring: {75, 90},
		SeasonSummer: {80, 95},
		SeasonFall:   {75, 90},
		SeasonWinter: {70, 85},
	},
	BiomeDesert: {
		SeasonSpring: {70, 95},
		SeasonSummer: {90, 115},
		SeasonFall:   {65, 90},
		SeasonWinter: {45, 70},
	},
	BiomeTundra: {
		SeasonSpring: {10, 35},
		SeasonSummer: {35, 55},
		SeasonFall:   {5, 30},
		SeasonWinter: {-30, 0},
	},
}

// conditionShift moves the season range per condition.
var conditionShift = map[Condition]TempRange{
	ClearSkies:    {0, 5},
	LightClouds:   {0, 0},
	HeavyClouds:   {-3, -3},
	Fog:           {-5, -3},
	Rain:          {-6, -4},
	HeavyRain:     {-8, -5},
	Thunderstorm:  {-8, -3},
	Snow:          {-8, -6},
	Blizzard:      {-15, -10},
	FreezingCold:  {-18, -12},
	ColdWinds:     {-10, -6},
	ScorchingHeat: {8, 15},
	HumidHaze:     {3, 6},
	Sandstorm:     {2, 5},
}

var defaultWindTargets = map[Condition]int{
	ClearSkies:    5,
	LightClouds:   8,
	HeavyClouds:   12,
	Fog:           2,
	Rain:          12,
	HeavyRain:     18,
	Thunderstorm:  30,
	Snow:          10,
	Blizzard:      45,
	FreezingCold:  8,
	ColdWinds:     28,
	ScorchingHeat: 4,
	HumidHaze:     3,
	Sandstorm:     50,
}

var defaultTables = map[Biome]map[Season]ClimateTable{
	BiomeTemperate: {
		SeasonSpring: {
			{ClearSkies, 1, 25}, {LightClouds, 26, 45}, {HeavyClouds, 46, 60}, {Fog, 61, 68},
			{Rain, 69, 85}, {HeavyRain, 86, 95}, {Thunderstorm, 96, 100},
		},
		SeasonSummer: {
			{ClearSkies, 1, 35}, {LightClouds, 36, 55}, {HumidHaze, 56, 65}, {HeavyClouds, 66, 75},
			{Rain, 76, 88}, {HeavyRain, 89, 94}, {Thunderstorm, 95, 100},
		},
		SeasonFall: {
			{ClearSkies, 1, 25}, {LightClouds, 26, 45}, {HeavyClouds, 46, 60}, {Fog, 61, 70},
			{ColdWinds, 71, 80}, {Rain, 81, 93}, {HeavyRain, 94, 100},
		},
		SeasonWinter: {
			{ClearSkies, 1, 20}, {LightClouds, 21, 35}, {HeavyClouds, 36, 50}, {ColdWinds, 51, 62},
			{FreezingCold, 63, 75}, {Snow, 76, 92}, {Blizzard, 93, 100},
		},
	},
	BiomeTropical: {
		SeasonSpring: {
			{ClearSkies, 1, 25}, {LightClouds, 26, 40}, {HumidHaze, 41, 55}, {HeavyClouds, 56, 65},
			{Rain, 66, 82}, {HeavyRain, 83, 93}, {Thunderstorm, 94, 100},
		},
		SeasonSummer: {
			{ClearSkies, 1, 15}, {LightClouds, 16, 25}, {HumidHaze, 26, 40}, {HeavyClouds, 41, 50},
			{Rain, 51, 70}, {HeavyRain, 71, 87}, {Thunderstorm, 88, 100},
		},
		SeasonFall: {
			{ClearSkies, 1, 20}, {LightClouds, 21, 35}, {HumidHaze, 36, 50}, {HeavyClouds, 51, 62},
			{Rain, 63, 80}, {HeavyRain, 81, 92}, {Thunderstorm, 93, 100},
		},
		SeasonWinter: {
			{ClearSkies, 1, 35}, {LightClouds, 36, 55}, {HumidHaze, 56, 65}, {HeavyClouds, 66, 78},
			{Rain, 79, 92}, {HeavyRain, 93, 100},
		},
	},
	BiomeDesert: {
		SeasonSpring: {
			{ClearSkies, 1, 45}, {LightClouds, 46, 62}, {HeavyClouds, 63, 72},
			{ScorchingHeat, 73, 90}, {Sandstorm, 91, 100},
		},
		SeasonSummer: {
			{ClearSkies, 1, 35}, {LightClouds, 36, 45}, {HeavyClouds, 46, 50},
			{ScorchingHeat, 51, 88}, {Sandstorm, 89, 100},
		},
		SeasonFall: {
			{ClearSkies, 1, 50}, {LightClouds, 51, 68}, {HeavyClouds, 69, 78},
			{ScorchingHeat, 79, 90}, {Sandstorm, 91, 100},
		},
		SeasonWinter: {
			{ClearSkies, 1, 45}, {LightClouds, 46, 62}, {HeavyClouds, 63, 75},
			{ColdWinds, 76, 85}, {Rain, 86, 93}, {Sandstorm, 94, 100},
		},
	},
	BiomeTundra: {
		SeasonSpring: {
			{ClearSkies, 1, 20}, {LightClouds, 21, 35}, {HeavyClouds, 36, 50}, {ColdWinds, 51, 65},
			{FreezingCold, 66, 78}, {Snow, 79, 94}, {Blizzard, 95, 100},
		},
		SeasonSummer: {
			{ClearSkies, 1, 30}, {LightClouds, 31, 50}, {HeavyClouds, 51, 62}, {Fog, 63, 72},
			{Rain, 73, 85}, {ColdWinds, 86, 95}, {Snow, 96, 100},
		},
		SeasonFall: {
			{ClearSkies, 1, 20}, {LightClouds, 21, 35}, {HeavyClouds, 36, 48}, {ColdWinds, 49, 62},
			{FreezingCold, 63, 75}, {Snow, 76, 92}, {Blizzard, 93, 100},
		},
		SeasonWinter: {
			{ClearSkies, 1, 15}, {LightClouds, 16, 25}, {HeavyClouds, 26, 35}, {ColdWinds, 36, 48},
			{FreezingCold, 49, 65}, {Snow, 66, 85}, {Blizzard, 86, 100},
		},
	},
}

// DefaultCatalog builds the built-in climate data. Each call returns a fresh
// copy that callers may modify.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Tables:       make(map[Biome]map[Season]ClimateTable, len(defaultTables)),
		Temperatures: make(map[TempKey]TempRange),
		WindTargets:  make(map[Condition]int, len(defaultWindTargets)),
	}
	for biome, seasons := range defaultTables {
		c.Tables[biome] = make(map[Season]ClimateTable, len(seasons))
		for season, table := range seasons {
			c.Tables[biome][season] = append(ClimateTable(nil), table...)
			base := seasonBase[biome][season]
			for _, e := range table {
				shift := conditionShift[e.Condition]
				c.Temperatures[TempKey{biome, season, e.Condition}] = TempRange{
					Min: base.Min + shift.Min,
					Max: base.Max + shift.Max,
				}
			}
		}
	}
	for cond, speed := range defaultWindTargets {
		c.WindTargets[cond] = speed
	}
	return c
}
