package simulation_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"github.com/couchcryptid/fantasy-weather-service/internal/forecast"
	"github.com/couchcryptid/fantasy-weather-service/internal/observability"
	"github.com/couchcryptid/fantasy-weather-service/internal/simulation"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

var (
	vale  = domain.Region{ID: "vale", Biome: domain.BiomeTemperate}
	dunes = domain.Region{ID: "dunes", Biome: domain.BiomeDesert}
	base  = time.Date(1492, time.March, 1, 0, 0, 0, 0, time.UTC)
)

type fakeSim struct {
	ticks  atomic.Int32
	travel bool
}

func (f *fakeSim) Tick(hours int) forecast.TickResult {
	n := int(f.ticks.Add(1))
	date := base.Add(time.Duration(n*hours) * time.Hour)
	res := forecast.TickResult{Regions: []forecast.RegionHour{
		{Region: dunes, Hour: domain.ForecastHour{Date: date, Condition: domain.Sandstorm}},
		{Region: vale, Hour: domain.ForecastHour{Date: date, Condition: domain.Rain}},
	}}
	if f.travel {
		p := 0.25
		res.Travel = &forecast.TravelHour{
			Source: vale,
			Target: dunes,
			Hour:   domain.ForecastHour{Date: date, Condition: domain.Rain, IsTransitional: true, TransitionProgress: &p},
		}
	}
	return res
}

type chanLoader struct {
	batches chan []domain.PublishedHour
	errs    []error
	calls   atomic.Int32
}

func newChanLoader(errs ...error) *chanLoader {
	return &chanLoader{batches: make(chan []domain.PublishedHour, 10), errs: errs}
}

func (l *chanLoader) LoadBatch(_ context.Context, hours []domain.PublishedHour) error {
	i := int(l.calls.Add(1) - 1)
	l.batches <- append([]domain.PublishedHour(nil), hours...)
	if i < len(l.errs) {
		return l.errs[i]
	}
	return nil
}

func receive(t *testing.T, ch <-chan []domain.PublishedHour) []domain.PublishedHour {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a published batch")
		return nil
	}
}

func startRunner(t *testing.T, r *simulation.Runner) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

// --- tests ---

func TestRunner_PublishesEveryRegionAndTravel(t *testing.T) {
	fc := clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	sim := &fakeSim{travel: true}
	ldr := newChanLoader()
	metrics := observability.NewMetricsForTesting()
	r := simulation.New(sim, ldr, fc, time.Minute, 2, slog.Default(), metrics)

	require.Error(t, r.CheckReadiness(context.Background()))

	cancel, done := startRunner(t, r)
	ctx, cctx := context.WithTimeout(context.Background(), 2*time.Second)
	defer cctx()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(time.Minute)
	batch := receive(t, ldr.batches)

	require.Len(t, batch, 3)
	assert.Equal(t, domain.KindRegion, batch[0].Kind)
	assert.Equal(t, "dunes", batch[0].RegionID)
	assert.Equal(t, "vale", batch[1].RegionID)
	assert.Equal(t, base.Add(2*time.Hour), batch[1].Date)
	assert.Equal(t, domain.KindTravel, batch[2].Kind)
	assert.Equal(t, "dunes", batch[2].RegionID)
	assert.Equal(t, "vale", batch[2].SourceRegionID)
	for _, h := range batch {
		assert.Equal(t, fc.Now().UTC(), h.PublishedAt)
	}

	assert.Eventually(t, func() bool { return r.CheckReadiness(context.Background()) == nil }, time.Second, 5*time.Millisecond)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.HoursPublished), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.TicksProcessed), 0)

	cancel()
	waitStopped(t, done)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.SimulationRunning), 0)
}

func TestRunner_RetriesPendingAfterFailure(t *testing.T) {
	fc := clockwork.NewFakeClock()
	sim := &fakeSim{}
	ldr := newChanLoader(errors.New("broker unavailable"))
	metrics := observability.NewMetricsForTesting()
	r := simulation.New(sim, ldr, fc, time.Minute, 1, slog.Default(), metrics)

	cancel, done := startRunner(t, r)
	ctx, cctx := context.WithTimeout(context.Background(), 2*time.Second)
	defer cctx()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(time.Minute)
	first := receive(t, ldr.batches)
	require.Len(t, first, 2)

	// Ticker plus the backoff timer.
	require.NoError(t, fc.BlockUntilContext(ctx, 2))
	require.Error(t, r.CheckReadiness(context.Background()))
	fc.Advance(200 * time.Millisecond)

	fc.Advance(time.Minute)
	second := receive(t, ldr.batches)
	require.Len(t, second, 4)
	assert.Equal(t, first, second[:2])
	assert.Equal(t, base.Add(2*time.Hour), second[2].Date)

	assert.Eventually(t, func() bool { return r.CheckReadiness(context.Background()) == nil }, time.Second, 5*time.Millisecond)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.PublishErrors), 0)

	cancel()
	waitStopped(t, done)
}

func TestRunner_NilLoaderOnlyAdvances(t *testing.T) {
	fc := clockwork.NewFakeClock()
	sim := &fakeSim{}
	r := simulation.New(sim, nil, fc, time.Second, 0, slog.Default(), observability.NewMetricsForTesting())

	cancel, done := startRunner(t, r)
	ctx, cctx := context.WithTimeout(context.Background(), 2*time.Second)
	defer cctx()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(time.Second)
	assert.Eventually(t, func() bool { return sim.ticks.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return r.CheckReadiness(context.Background()) == nil }, time.Second, 5*time.Millisecond)

	cancel()
	waitStopped(t, done)
}

func TestRunner_DisabledInterval(t *testing.T) {
	sim := &fakeSim{}
	r := simulation.New(sim, newChanLoader(), clockwork.NewFakeClock(), 0, 1, slog.Default(), observability.NewMetricsForTesting())

	cancel, done := startRunner(t, r)
	assert.Eventually(t, func() bool { return r.CheckReadiness(context.Background()) == nil }, time.Second, 5*time.Millisecond)

	cancel()
	waitStopped(t, done)
	assert.Zero(t, sim.ticks.Load())
}

func TestRunner_CancelledBeforeStart(t *testing.T) {
	ldr := newChanLoader()
	r := simulation.New(&fakeSim{}, ldr, clockwork.NewFakeClock(), time.Minute, 1, slog.Default(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Run(ctx))
	assert.Zero(t, ldr.calls.Load())
}
