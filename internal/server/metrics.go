package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the API's Prometheus collectors on a private registry, so
// several servers can coexist in one process.
type Metrics struct {
	registry        *prometheus.Registry
	RequestDuration *prometheus.HistogramVec
	Requests        *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crickmetrics_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"route"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crickmetrics_requests_total",
				Help: "Total API requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
	m.registry.MustRegister(
		m.RequestDuration,
		m.Requests,
		collectors.NewGoCollector(),
	)
	return m
}

// Observe records one finished request.
func (m *Metrics) Observe(route, code string, d time.Duration) {
	m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
	m.Requests.WithLabelValues(route, code).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
