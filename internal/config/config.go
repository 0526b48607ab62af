package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Condition model names accepted by CONDITION_MODEL.
const (
	ConditionModelPersistence = "persistence"
	ConditionModelRandomWalk  = "random-walk"
)

// RegionSpec is one REGIONS entry: a region id and its biome.
type RegionSpec struct {
	ID    string
	Biome string
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	KafkaBrokers       []string
	KafkaForecastTopic string
	KafkaEnabled       bool

	// Simulation settings.
	Seed            int64
	StartDate       time.Time
	TickInterval    time.Duration
	HoursPerTick    int
	TransitionHours int
	ConditionModel  string
	ClimateFile     string
	Regions         []RegionSpec
}

// Persistence reports whether the energy burnout rule is active.
func (c *Config) Persistence() bool {
	return c.ConditionModel != ConditionModelRandomWalk
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	tickInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("TICK_INTERVAL", "1m"))
	if err != nil || tickInterval < 0 {
		return nil, errors.New("invalid TICK_INTERVAL")
	}

	hoursPerTick, err := parsePositiveInt("HOURS_PER_TICK", 1)
	if err != nil {
		return nil, err
	}

	transitionHours, err := parsePositiveInt("TRANSITION_HOURS", 12)
	if err != nil {
		return nil, err
	}

	seed, err := parseSeed()
	if err != nil {
		return nil, err
	}

	startDate, err := parseStartDate()
	if err != nil {
		return nil, err
	}

	regions, err := ParseRegions(os.Getenv("REGIONS"))
	if err != nil {
		return nil, err
	}

	brokersRaw := os.Getenv("KAFKA_BROKERS")
	kafkaEnabled := brokersRaw != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaForecastTopic: sharedcfg.EnvOrDefault("KAFKA_FORECAST_TOPIC", "regional-forecast-hours"),
		KafkaEnabled:       kafkaEnabled,

		Seed:            seed,
		StartDate:       startDate,
		TickInterval:    tickInterval,
		HoursPerTick:    hoursPerTick,
		TransitionHours: transitionHours,
		ConditionModel:  strings.ToLower(sharedcfg.EnvOrDefault("CONDITION_MODEL", ConditionModelPersistence)),
		ClimateFile:     os.Getenv("CLIMATE_FILE"),
		Regions:         regions,
	}

	if cfg.ConditionModel != ConditionModelPersistence && cfg.ConditionModel != ConditionModelRandomWalk {
		return nil, fmt.Errorf("invalid CONDITION_MODEL %q", cfg.ConditionModel)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaForecastTopic == "" {
		return nil, errors.New("KAFKA_FORECAST_TOPIC is required")
	}

	return cfg, nil
}

// ParseRegions parses "id:biome" pairs separated by commas, e.g.
// "vale:temperate,dunes:desert".
func ParseRegions(s string) ([]RegionSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	seen := make(map[string]bool)
	var out []RegionSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, biome, ok := strings.Cut(part, ":")
		id, biome = strings.TrimSpace(id), strings.TrimSpace(biome)
		if !ok || id == "" || biome == "" {
			return nil, fmt.Errorf("invalid REGIONS entry %q: want id:biome", part)
		}
		if seen[id] {
			return nil, fmt.Errorf("invalid REGIONS: duplicate region %q", id)
		}
		seen[id] = true
		out = append(out, RegionSpec{ID: id, Biome: strings.ToLower(biome)})
	}
	return out, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parseSeed() (int64, error) {
	s := os.Getenv("SIM_SEED")
	if s == "" {
		return time.Now().UnixNano(), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid SIM_SEED: %w", err)
	}
	return n, nil
}

// parseStartDate accepts RFC 3339 timestamps or plain dates. Unset means the
// simulation starts at the current hour.
func parseStartDate() (time.Time, error) {
	s := strings.TrimSpace(os.Getenv("SIM_START"))
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SIM_START %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}
