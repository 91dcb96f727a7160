package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RecomputeTotal  *prometheus.CounterVec
	UploadsTotal    *prometheus.CounterVec
}

// NewMetrics creates a metrics container with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cpipulse_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cpipulse_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RecomputeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cpipulse_pipeline_recomputes_total",
			Help: "Full pipeline recomputations by view and outcome.",
		}, []string{"view", "outcome"}),
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cpipulse_dataset_uploads_total",
			Help: "Dataset uploads by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveRecompute records one pipeline recomputation.
func (m *Metrics) ObserveRecompute(view string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RecomputeTotal.WithLabelValues(view, outcome).Inc()
}
