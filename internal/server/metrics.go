package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the chart server.
type Metrics struct {
	Requests        *prometheus.CounterVec
	ChartsComputed  *prometheus.CounterVec
	ComputeDuration prometheus.Histogram
}

// NewMetrics creates and registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trichart_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		ChartsComputed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trichart_charts_computed_total",
			Help: "Chart computations by outcome (ok or error code)",
		}, []string{"outcome"}),
		ComputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "trichart_compute_duration_seconds",
			Help:    "Time spent computing one chart",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}
