package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog/log"
)

// MetricsRegistry holds all Prometheus metrics for PioneerPool
type MetricsRegistry struct {
	registry *prometheus.Registry

	// Compute performance metrics
	ComputeDuration *prometheus.HistogramVec
	PanelsComputed  *prometheus.CounterVec

	// Detection outcome metrics
	PioneerPeriods  prometheus.Counter
	FallbackPeriods prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetricsRegistry creates a metrics registry with all PioneerPool metrics
// registered on its own Prometheus registry.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		ComputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pioneerpool_compute_duration_seconds",
				Help:    "Duration of weight computation and pooling in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"op"},
		),

		PanelsComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pioneerpool_panels_computed_total",
				Help: "Total number of forecast panels processed by source",
			},
			[]string{"source"},
		),

		PioneerPeriods: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pioneerpool_pioneer_periods_total",
				Help: "Total number of periods where a pioneer was detected",
			},
		),

		FallbackPeriods: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pioneerpool_fallback_periods_total",
				Help: "Total number of periods pooled via the mean fallback",
			},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pioneerpool_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pioneerpool_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(
		m.ComputeDuration,
		m.PanelsComputed,
		m.PioneerPeriods,
		m.FallbackPeriods,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// ComputeTimer tracks execution time for a compute operation
type ComputeTimer struct {
	metrics *MetricsRegistry
	op      string
	start   time.Time
}

// StartComputeTimer begins timing a compute operation
func (m *MetricsRegistry) StartComputeTimer(op string) *ComputeTimer {
	return &ComputeTimer{metrics: m, op: op, start: time.Now()}
}

// Stop completes the timing and records the metric
func (ct *ComputeTimer) Stop() {
	duration := time.Since(ct.start)
	ct.metrics.ComputeDuration.WithLabelValues(ct.op).Observe(duration.Seconds())

	log.Debug().
		Str("op", ct.op).
		Dur("duration", duration).
		Msg("compute operation completed")
}

// RecordOutcome records how many periods resolved to a pioneer versus the
// mean fallback for one processed panel.
func (m *MetricsRegistry) RecordOutcome(source string, pioneerPeriods, fallbackPeriods int) {
	m.PanelsComputed.WithLabelValues(source).Inc()
	m.PioneerPeriods.Add(float64(pioneerPeriods))
	m.FallbackPeriods.Add(float64(fallbackPeriods))
}

// Handler returns the Prometheus scrape handler for this registry.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather exposes the registered metric families, used by monitoring tests.
func (m *MetricsRegistry) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// DefaultMetrics is the global metrics registry instance
var DefaultMetrics *MetricsRegistry

// InitializeMetrics initializes the global metrics registry
func InitializeMetrics() {
	DefaultMetrics = NewMetricsRegistry()
	log.Info().Msg("Prometheus metrics registry initialized")
}
