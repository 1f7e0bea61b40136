package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the backend
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Store Metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	// Upstream Metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamFallbacksTotal  *prometheus.CounterVec

	// Business Metrics
	StatusChecksCreatedTotal prometheus.Counter
}

// NewMetricsRegistry initializes all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studio_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "studio_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		// Store Metrics
		StoreOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_store_operations_total",
				Help: "Total document store operations by driver, operation and result",
			},
			[]string{"driver", "operation", "result"},
		),
		StoreOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studio_store_operation_duration_seconds",
				Help:    "Document store operation time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"driver", "operation"},
		),

		// Upstream Metrics
		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_upstream_requests_total",
				Help: "Total calls to upstream services by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studio_upstream_request_duration_seconds",
				Help:    "Upstream call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		UpstreamFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_upstream_fallbacks_total",
				Help: "Total responses served from the static fallback payload",
			},
			[]string{"operation"},
		),

		// Business Metrics
		StatusChecksCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "studio_status_checks_created_total",
				Help: "Total status check records written",
			},
		),
	}
}
