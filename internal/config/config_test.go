package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "regional-forecast-hours", cfg.KafkaForecastTopic)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, 1, cfg.HoursPerTick)
	assert.Equal(t, 12, cfg.TransitionHours)
	assert.Equal(t, ConditionModelPersistence, cfg.ConditionModel)
	assert.True(t, cfg.Persistence())
	assert.Empty(t, cfg.ClimateFile)
	assert.Empty(t, cfg.Regions)
	assert.True(t, cfg.StartDate.IsZero())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_FORECAST_TOPIC", "custom-forecast")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("SIM_START", "1492-06-01T06:00:00Z")
	t.Setenv("TICK_INTERVAL", "5s")
	t.Setenv("HOURS_PER_TICK", "3")
	t.Setenv("TRANSITION_HOURS", "24")
	t.Setenv("CONDITION_MODEL", "random-walk")
	t.Setenv("CLIMATE_FILE", "/etc/weather/climate.yaml")
	t.Setenv("REGIONS", "vale:temperate, dunes:Desert")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-forecast", cfg.KafkaForecastTopic)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, time.Date(1492, 6, 1, 6, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, 5*time.Second, cfg.TickInterval)
	assert.Equal(t, 3, cfg.HoursPerTick)
	assert.Equal(t, 24, cfg.TransitionHours)
	assert.False(t, cfg.Persistence())
	assert.Equal(t, "/etc/weather/climate.yaml", cfg.ClimateFile)
	assert.Equal(t, []RegionSpec{{ID: "vale", Biome: "temperate"}, {ID: "dunes", Biome: "desert"}}, cfg.Regions)
}

func TestLoad_PlainStartDate(t *testing.T) {
	t.Setenv("SIM_START", "1492-06-01")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Date(1492, 6, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"TICK_INTERVAL", "soon", "TICK_INTERVAL"},
		{"TICK_INTERVAL", "-1s", "TICK_INTERVAL"},
		{"HOURS_PER_TICK", "0", "HOURS_PER_TICK"},
		{"HOURS_PER_TICK", "many", "HOURS_PER_TICK"},
		{"TRANSITION_HOURS", "-4", "TRANSITION_HOURS"},
		{"SIM_SEED", "abc", "SIM_SEED"},
		{"SIM_START", "next tuesday", "SIM_START"},
		{"CONDITION_MODEL", "markov", "CONDITION_MODEL"},
		{"REGIONS", "vale", "REGIONS"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaEnabledUsesDefaultBroker(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
}

func TestParseRegions(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got, err := ParseRegions("  ")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("skips blank entries", func(t *testing.T) {
		got, err := ParseRegions("a:tundra,,b:tropical,")
		require.NoError(t, err)
		assert.Equal(t, []RegionSpec{{ID: "a", Biome: "tundra"}, {ID: "b", Biome: "tropical"}}, got)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := ParseRegions("a:tundra,a:desert")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("missing biome", func(t *testing.T) {
		_, err := ParseRegions("a:")
		require.Error(t, err)
	})
}
