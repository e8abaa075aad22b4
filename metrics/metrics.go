// Package metrics holds the Prometheus instrumentation of the presenter
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warpglobe"

// Metrics holds the counters, histograms and gauges for the frame loop, loader and narrative
type Metrics struct {
	Frames        prometheus.Counter
	FrameDuration prometheus.Histogram

	// Loader
	Fetches       *prometheus.CounterVec // labels: kind={year,domain,region,world}, outcome={ok,error}
	PathCache     *prometheus.CounterVec // labels: result={hit,miss}
	StaleResults  prometheus.Counter
	FetchDuration *prometheus.HistogramVec // labels: kind

	// Narrative
	Transitions      *prometheus.CounterVec // labels: to
	ScrollSuppressed prometheus.Counter
	ActiveStep       prometheus.Gauge

	registry *prometheus.Registry
}

func newMetrics() *Metrics {
	return &Metrics{
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Total rendered frames.",
		}),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Update plus render time of one frame.",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
		}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Data file loads by kind and outcome.",
		}, []string{"kind", "outcome"}),
		PathCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_cache_total",
			Help:      "Parsed file cache lookups by result.",
		}, []string{"result"}),
		StaleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_total",
			Help:      "Fetch completions dropped because their step was no longer active.",
		}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of one fetch request.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"kind"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Narrative state transitions by target state.",
		}, []string{"to"}),
		ScrollSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scroll_suppressed_total",
			Help:      "Scroll inputs swallowed by the scroll lock.",
		}),
		ActiveStep: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_step",
			Help:      "Index of the active narrative step, -1 when none.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Frames,
		m.FrameDuration,
		m.Fetches,
		m.PathCache,
		m.StaleResults,
		m.FetchDuration,
		m.Transitions,
		m.ScrollSuppressed,
		m.ActiveStep,
	}
}

// NewMetrics creates the metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.registry = reg
	return m
}

// Handler serves the default gatherer in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

// Registry returns the private registry of a testing instance, nil otherwise
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
