package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fantasy_weather"

// Metrics holds the Prometheus counters, histograms, and gauges for the simulation.
type Metrics struct {
	// Forecast generation metrics.
	HoursGenerated   prometheus.Counter
	ConditionSteps   *prometheus.CounterVec // labels: cause={burnout,walk,fallback}
	ConditionChanges prometheus.Counter
	CelestialEvents  *prometheus.CounterVec // labels: kind={shooting_star,meteor_impact}
	RegionsActive    prometheus.Gauge

	// Travel metrics.
	TransitionActive   prometheus.Gauge
	TransitionProgress prometheus.Gauge
	BlendedHours       prometheus.Counter

	// Tick runner metrics.
	SimulationRunning prometheus.Gauge
	TicksProcessed    prometheus.Counter
	HoursPublished    prometheus.Counter
	PublishErrors     prometheus.Counter
	PublishBatchSize  prometheus.Histogram
	TickDuration      prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HoursGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hours_generated_total",
			Help:      "Total forecast hours generated across all regions.",
		}),
		ConditionSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "condition_steps_total",
			Help:      "Condition selection steps by the rule that decided them.",
		}, []string{"cause"}),
		ConditionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "condition_changes_total",
			Help:      "Condition selection steps that moved to a different condition.",
		}),
		CelestialEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "celestial_events_total",
			Help:      "Rare celestial events rolled into generated hours.",
		}, []string{"kind"}),
		RegionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regions_active",
			Help:      "Number of regions with an initialized engine.",
		}),
		TransitionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_active",
			Help:      "1 while a party is traveling between regions, 0 otherwise.",
		}),
		TransitionProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transition_progress",
			Help:      "Progress of the active journey in [0, 1].",
		}),
		BlendedHours: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blended_hours_total",
			Help:      "Total forecast hours produced by blending two regions.",
		}),
		SimulationRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulation_running",
			Help:      "1 when the tick runner is active, 0 when shut down.",
		}),
		TicksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_processed_total",
			Help:      "Total simulation ticks processed.",
		}),
		HoursPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hours_published_total",
			Help:      "Total forecast hours written to the sink.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Total failed sink writes.",
		}),
		PublishBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_batch_size",
			Help:      "Number of forecast hours per published batch.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Duration of a complete advance-and-publish tick.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}

	prometheus.MustRegister(
		m.HoursGenerated,
		m.ConditionSteps,
		m.ConditionChanges,
		m.CelestialEvents,
		m.RegionsActive,
		m.TransitionActive,
		m.TransitionProgress,
		m.BlendedHours,
		m.SimulationRunning,
		m.TicksProcessed,
		m.HoursPublished,
		m.PublishErrors,
		m.PublishBatchSize,
		m.TickDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HoursGenerated:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "hours_generated_total"}),
		ConditionSteps:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "condition_steps_total"}, []string{"cause"}),
		ConditionChanges:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "condition_changes_total"}),
		CelestialEvents:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "celestial_events_total"}, []string{"kind"}),
		RegionsActive:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "regions_active"}),
		TransitionActive:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "transition_active"}),
		TransitionProgress: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "transition_progress"}),
		BlendedHours:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "blended_hours_total"}),
		SimulationRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "simulation_running"}),
		TicksProcessed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "ticks_processed_total"}),
		HoursPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "hours_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "publish_errors_total"}),
		PublishBatchSize:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "publish_batch_size"}),
		TickDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "tick_duration_seconds"}),
	}
}
