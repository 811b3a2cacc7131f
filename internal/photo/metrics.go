package photo

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zombor/photo-analyzer/internal/vision"
)

// Metrics records analysis outcomes on a private registry
type Metrics struct {
	registry *prometheus.Registry
	analyses *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration prometheus.Histogram
	idle     prometheus.Counter
}

// NewMetrics creates the analyzer metrics and registers them
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photo_analyses_total",
			Help: "Photo analyses by outcome.",
		}, []string{"outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photo_analysis_failures_total",
			Help: "Failed photo analyses by failure kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "photo_analysis_duration_seconds",
			Help:    "Time spent waiting for the vision service.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		idle: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "photo_idle_renders_total",
			Help: "Renders without a captured photo.",
		}),
	}
	m.registry.MustRegister(m.analyses, m.failures, m.duration, m.idle)
	return m
}

// Handler exposes the metrics in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeIdle() {
	m.idle.Inc()
}

func (m *Metrics) observeAnalysis(state State, elapsed time.Duration, err error) {
	m.analyses.WithLabelValues(string(state)).Inc()
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(string(failureKind(err))).Inc()
	}
}

// failureKind returns the vision error kind of err, or "unknown"
func failureKind(err error) vision.ErrorKind {
	var vErr *vision.Error
	if errors.As(err, &vErr) {
		return vErr.Kind
	}
	return "unknown"
}
