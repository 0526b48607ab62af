package domain

import "time"

// Condition names a weather condition, e.g. "Heavy Rain".
type Condition string

const (
	ClearSkies    Condition = "Clear Skies"
	LightClouds   Condition = "Light Clouds"
	HeavyClouds   Condition = "Heavy Clouds"
	Fog           Condition = "Fog"
	Rain          Condition = "Rain"
	HeavyRain     Condition = "Heavy Rain"
	Thunderstorm  Condition = "Thunderstorm"
	Snow          Condition = "Snow"
	Blizzard      Condition = "Blizzard"
	FreezingCold  Condition = "Freezing Cold"
	ColdWinds     Condition = "Cold Winds"
	ScorchingHeat Condition = "Scorching Heat"
	HumidHaze     Condition = "Humid Haze"
	Sandstorm     Condition = "Sandstorm"
)

// DefaultCondition is used whenever a climate lookup comes back empty.
const DefaultCondition = ClearSkies

// Biome selects the climate tables for a region.
type Biome string

const (
	BiomeTemperate Biome = "temperate"
	BiomeTropical  Biome = "tropical"
	BiomeDesert    Biome = "desert"
	BiomeTundra    Biome = "tundra"
)

// Region is the slice of the external region descriptor the simulation needs.
type Region struct {
	ID    string `json:"id"`
	Biome Biome  `json:"biome"`
}

// ForecastHour is one generated hour of weather. Values are never modified
// after they leave the generator; blending produces new values.
type ForecastHour struct {
	Date               time.Time     `json:"date"`
	Hour               int           `json:"hour"`
	Condition          Condition     `json:"condition"`
	Temperature        int           `json:"temperature"`
	WindDirection      WindDirection `json:"wind_direction"`
	WindSpeed          int           `json:"wind_speed"`
	WindIntensity      WindIntensity `json:"wind_intensity"`
	EffectsText        string        `json:"effects_text"`
	HasShootingStar    bool          `json:"has_shooting_star"`
	HasMeteorImpact    bool          `json:"has_meteor_impact"`
	IsTransitional     bool          `json:"is_transitional"`
	TransitionProgress *float64      `json:"transition_progress,omitempty"`
}

// Published hour kinds.
const (
	KindRegion = "region"
	KindTravel = "travel"
)

// PublishedHour is a ForecastHour tagged with where it belongs, as written to
// the forecast sink. Travel hours carry both ends of the journey.
type PublishedHour struct {
	Kind           string `json:"kind"`
	RegionID       string `json:"region_id"`
	SourceRegionID string `json:"source_region_id,omitempty"`
	ForecastHour
	PublishedAt time.Time `json:"published_at"`
}
