package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/fantasy-weather-service/internal/adapter/climatefile"
	httpadapter "github.com/couchcryptid/fantasy-weather-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/fantasy-weather-service/internal/adapter/kafka"
	"github.com/couchcryptid/fantasy-weather-service/internal/config"
	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"github.com/couchcryptid/fantasy-weather-service/internal/forecast"
	"github.com/couchcryptid/fantasy-weather-service/internal/observability"
	"github.com/couchcryptid/fantasy-weather-service/internal/simulation"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Climate overrides are optional (CLIMATE_FILE).
	var catalog *domain.Catalog
	if cfg.ClimateFile != "" {
		catalog, err = climatefile.Load(cfg.ClimateFile)
		if err != nil {
			logger.Error("failed to load climate file", "path", cfg.ClimateFile, "error", err)
			os.Exit(1)
		}
		logger.Info("climate overrides loaded", "path", cfg.ClimateFile, "biomes", len(catalog.Tables))
	}

	svc := forecast.NewService(forecast.Options{
		Generators:      forecast.NewGenerators(catalog, cfg.Persistence()),
		Rollers:         forecast.SeededRollers(cfg.Seed),
		TransitionHours: cfg.TransitionHours,
	}, logger, metrics)
	logger.Info("forecast service ready", "seed", cfg.Seed, "condition_model", cfg.ConditionModel)

	for _, r := range cfg.Regions {
		svc.Initialize(domain.Region{ID: r.ID, Biome: domain.Biome(r.Biome)}, cfg.StartDate)
	}

	// Publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		loader simulation.ForecastLoader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loader = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaForecastTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	runner := simulation.New(svc, loader, clockwork.NewRealClock(), cfg.TickInterval, cfg.HoursPerTick, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, runner, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start tick runner.
	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("tick runner error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
