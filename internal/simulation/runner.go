package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/fantasy-weather-service/internal/domain"
	"github.com/couchcryptid/fantasy-weather-service/internal/forecast"
	"github.com/couchcryptid/fantasy-weather-service/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"
)

// maxPending caps how many unpublished hours are held across failed ticks.
// Older hours are dropped first.
const maxPending = 1000

// Ticker advances the simulation. *forecast.Service implements it.
type Ticker interface {
	Tick(hours int) forecast.TickResult
}

// ForecastLoader writes published hours to the destination.
type ForecastLoader interface {
	LoadBatch(ctx context.Context, hours []domain.PublishedHour) error
}

// Runner advances simulated time on a wall-clock ticker and publishes the
// current hour of every region after each tick.
type Runner struct {
	sim          Ticker
	loader       ForecastLoader
	clock        clockwork.Clock
	interval     time.Duration
	hoursPerTick int
	logger       *slog.Logger
	metrics      *observability.Metrics
	ready        atomic.Bool
	pending      []domain.PublishedHour
}

// New creates a Runner. A nil loader only advances time; a non-positive
// interval disables ticking altogether.
func New(sim Ticker, loader ForecastLoader, clock clockwork.Clock, interval time.Duration, hoursPerTick int, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	if hoursPerTick <= 0 {
		hoursPerTick = 1
	}
	return &Runner{
		sim:          sim,
		loader:       loader,
		clock:        clock,
		interval:     interval,
		hoursPerTick: hoursPerTick,
		logger:       logger,
		metrics:      metrics,
	}
}

// CheckReadiness returns nil once the first tick has been handled, or when
// ticking is disabled.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("simulation has not completed a tick yet")
	}
	return nil
}

// Run executes the tick loop until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.interval <= 0 {
		r.logger.Info("tick runner disabled")
		r.ready.Store(true)
		<-ctx.Done()
		return nil
	}

	r.logger.Info("tick runner started", "interval", r.interval, "hours_per_tick", r.hoursPerTick)
	r.metrics.SimulationRunning.Set(1)
	defer r.metrics.SimulationRunning.Set(0)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("tick runner stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}

		if !r.processTick(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processTick advances the simulation once and publishes the result. Returns
// false if the runner should stop.
func (r *Runner) processTick(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := r.clock.Now()

	res := r.sim.Tick(r.hoursPerTick)
	r.metrics.TicksProcessed.Inc()
	if res.Arrived != nil {
		r.logger.Info("party arrived", "region", res.Arrived.ID)
	}

	if r.loader == nil {
		r.ready.Store(true)
		return true
	}

	batch := append(r.pending, r.toPublished(res)...)
	if len(batch) > maxPending {
		r.logger.Warn("dropping unpublished forecast hours", "dropped", len(batch)-maxPending)
		batch = batch[len(batch)-maxPending:]
	}
	if len(batch) == 0 {
		r.pending = nil
		r.ready.Store(true)
		return true
	}

	if err := r.loader.LoadBatch(ctx, batch); err != nil {
		if ctx.Err() != nil {
			return false
		}
		r.logger.Error("publish forecast hours failed", "error", err, "batch_size", len(batch))
		r.metrics.PublishErrors.Inc()
		r.pending = batch
		return r.backoffOrStop(ctx, backoff, maxBackoff)
	}

	r.pending = nil
	*backoff = 200 * time.Millisecond
	r.metrics.HoursPublished.Add(float64(len(batch)))
	r.metrics.PublishBatchSize.Observe(float64(len(batch)))
	r.metrics.TickDuration.Observe(r.clock.Since(start).Seconds())
	r.ready.Store(true)
	return true
}

// toPublished flattens a tick into sink records stamped with the wall clock.
func (r *Runner) toPublished(res forecast.TickResult) []domain.PublishedHour {
	now := r.clock.Now().UTC()
	out := make([]domain.PublishedHour, 0, len(res.Regions)+1)
	for _, rh := range res.Regions {
		out = append(out, domain.PublishedHour{
			Kind:         domain.KindRegion,
			RegionID:     rh.Region.ID,
			ForecastHour: rh.Hour,
			PublishedAt:  now,
		})
	}
	if res.Travel != nil {
		out = append(out, domain.PublishedHour{
			Kind:           domain.KindTravel,
			RegionID:       res.Travel.Target.ID,
			SourceRegionID: res.Travel.Source.ID,
			ForecastHour:   res.Travel.Hour,
			PublishedAt:    now,
		})
	}
	return out
}

// backoffOrStop sleeps with the current backoff and advances it. Returns
// false if the context was cancelled.
func (r *Runner) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !r.sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}

// sleepWithContext waits on the runner's clock so tests can drive backoff.
func (r *Runner) sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := r.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
