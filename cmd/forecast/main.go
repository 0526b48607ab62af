// Command forecast prints a seeded regional forecast as JSON. It drives the
// same forecast service the daemon runs, so the output matches what weatherd
// would generate for the same seed, region, and start hour.
//
// Usage:
//
//	go run ./cmd/forecast \
//	  -seed 1492 -biome tundra -season winter \
//	  -date 1492-12-24 -advance 6 \
//	  -travel-to desert -travel-hours 4 \
//	  -out forecast.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/adapter/climatefile"
	"github.com/couchcryptid/fantasy-weather-service/internal/config"
	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"github.com/couchcryptid/fantasy-weather-service/internal/forecast"
	"github.com/couchcryptid/fantasy-weather-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// defaultDate anchors runs without -date so repeated invocations match.
var defaultDate = time.Date(1492, time.March, 20, 6, 0, 0, 0, time.UTC)

type output struct {
	Seed     int64                 `json:"seed"`
	Region   domain.Region         `json:"region"`
	Season   domain.Season         `json:"season"`
	Forecast []domain.ForecastHour `json:"forecast"`
	Travel   *travelOutput         `json:"travel,omitempty"`
}

type travelOutput struct {
	Info  *forecast.TransitionInfo `json:"info,omitempty"`
	Hours []domain.ForecastHour    `json:"hours"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Int64("seed", 1, "simulation seed")
	biome := flag.String("biome", string(domain.BiomeTemperate), "biome of the region")
	regionID := flag.String("region", "home", "region id")
	seasonName := flag.String("season", "auto", "spring, summer, fall, winter, or auto")
	dateStr := flag.String("date", "", "start date (YYYY-MM-DD or RFC3339)")
	advance := flag.Int("advance", 0, "hours to advance before printing")
	travelTo := flag.String("travel-to", "", "biome to travel toward; empty prints no journey")
	travelHours := flag.Int("travel-hours", 0, "hours already spent traveling")
	model := flag.String("model", "persistence", "condition model: persistence or random-walk")
	climatePath := flag.String("climate", "", "optional YAML climate overrides")
	outPath := flag.String("out", "", "output path (default stdout)")
	flag.Parse()

	season, ok := domain.ParseSeason(*seasonName)
	if !ok {
		return fmt.Errorf("unknown season %q", *seasonName)
	}
	date, err := parseDate(*dateStr)
	if err != nil {
		return err
	}
	if *advance < 0 || *travelHours < 0 {
		return fmt.Errorf("-advance and -travel-hours must not be negative")
	}

	// Freeze the clock so a run without -date is reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(defaultDate))
	defer domain.SetClock(nil)

	var catalog *domain.Catalog
	if *climatePath != "" {
		if catalog, err = climatefile.Load(*climatePath); err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc := forecast.NewService(forecast.Options{
		Generators: forecast.NewGenerators(catalog, *model != config.ConditionModelRandomWalk),
		Rollers:    forecast.SeededRollers(*seed),
	}, logger, observability.NewMetricsForTesting())

	region := domain.Region{ID: *regionID, Biome: domain.Biome(strings.ToLower(*biome))}
	svc.InitializeSeason(region, season, date)
	if *advance > 0 {
		svc.AdvanceTime(region, *advance, time.Time{})
	}

	out := output{
		Seed:     *seed,
		Region:   region,
		Season:   season,
		Forecast: svc.RegionForecast(region.ID),
	}

	if *travelTo != "" {
		target := domain.Region{ID: region.ID + "->" + *travelTo, Biome: domain.Biome(strings.ToLower(*travelTo))}
		hours, ok := svc.StartTransition(region, target)
		if !ok {
			return fmt.Errorf("cannot travel from %s to itself", region.ID)
		}
		if *travelHours > 0 {
			var traveling bool
			if hours, traveling = svc.AdvanceTransition(*travelHours); !traveling {
				hours = svc.RegionForecast(target.ID)
			}
		}
		out.Travel = &travelOutput{Info: svc.TransitionInfo(), Hours: hours}
		log.Printf("travel %s -> %s: %d hours", region.Biome, target.Biome, len(hours))
	}

	log.Printf("%s (%s): %d forecast hours", region.ID, region.Biome, len(out.Forecast))
	return writeJSON(*outPath, out)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return defaultDate, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -date %q: use YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode forecast: %w", err)
	}
	return nil
}
