// Package climatefile loads climate catalog overrides from YAML.
//
// A file may replace whole {biome, season} tables, set temperature ranges for
// individual {biome, season, condition} keys, and change per-condition wind
// targets. Everything it does not mention keeps the built-in values.
//
//	tables:
//	  swamp:
//	    summer:
//	      - {condition: Fog, min: 1, max: 40}
//	      - {condition: Rain, min: 41, max: 100}
//	temperatures:
//	  - {biome: swamp, season: summer, condition: Fog, min: 60, max: 75}
//	wind_targets:
//	  Fog: 2
package climatefile

import (
	"fmt"
	"os"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type file struct {
	Tables       map[string]map[string][]domain.ClimateEntry `yaml:"tables"`
	Temperatures []temperatureEntry                          `yaml:"temperatures"`
	WindTargets  map[string]int                              `yaml:"wind_targets"`
}

type temperatureEntry struct {
	Biome     string `yaml:"biome"`
	Season    string `yaml:"season"`
	Condition string `yaml:"condition"`
	Min       int    `yaml:"min"`
	Max       int    `yaml:"max"`
}

// Load reads path and merges it over the built-in catalog.
func Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read climate file: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML overrides over the built-in catalog.
func Parse(data []byte) (*domain.Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse climate file: %w", err)
	}

	catalog := domain.DefaultCatalog()

	for biomeName, seasons := range f.Tables {
		biome := domain.Biome(biomeName)
		if catalog.Tables[biome] == nil {
			catalog.Tables[biome] = make(map[domain.Season]domain.ClimateTable)
		}
		for seasonName, entries := range seasons {
			season, ok := domain.ParseSeason(seasonName)
			if !ok || season == domain.SeasonAuto {
				return nil, fmt.Errorf("climate table %s: unknown season %q", biomeName, seasonName)
			}
			table := domain.ClimateTable(entries)
			if err := validateTable(table); err != nil {
				return nil, fmt.Errorf("climate table %s/%s: %w", biomeName, season, err)
			}
			catalog.Tables[biome][season] = table
		}
	}

	for _, t := range f.Temperatures {
		season, ok := domain.ParseSeason(t.Season)
		if !ok || season == domain.SeasonAuto {
			return nil, fmt.Errorf("temperature %s/%s: unknown season", t.Biome, t.Season)
		}
		if t.Biome == "" || t.Condition == "" {
			return nil, fmt.Errorf("temperature entry needs biome and condition")
		}
		if t.Min > t.Max {
			return nil, fmt.Errorf("temperature %s/%s/%s: min %d above max %d", t.Biome, season, t.Condition, t.Min, t.Max)
		}
		key := domain.TempKey{Biome: domain.Biome(t.Biome), Season: season, Condition: domain.Condition(t.Condition)}
		catalog.Temperatures[key] = domain.TempRange{Min: t.Min, Max: t.Max}
	}

	for cond, speed := range f.WindTargets {
		if speed < 0 {
			return nil, fmt.Errorf("wind target %s: negative speed %d", cond, speed)
		}
		catalog.WindTargets[domain.Condition(cond)] = speed
	}

	return catalog, nil
}

// validateTable checks that ranges lie in 1-100, are ordered, and do not overlap.
func validateTable(t domain.ClimateTable) error {
	if len(t) == 0 {
		return fmt.Errorf("table is empty")
	}
	prevMax := 0
	for _, e := range t {
		if e.Condition == "" {
			return fmt.Errorf("entry without condition")
		}
		if e.RollMin < 1 || e.RollMax > 100 || e.RollMin > e.RollMax {
			return fmt.Errorf("%s: invalid roll range %d-%d", e.Condition, e.RollMin, e.RollMax)
		}
		if e.RollMin <= prevMax {
			return fmt.Errorf("%s: roll range %d-%d overlaps the previous entry", e.Condition, e.RollMin, e.RollMax)
		}
		prevMax = e.RollMax
	}
	return nil
}
