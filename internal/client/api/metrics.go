package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeHTTP    = "http_error"
	OutcomeTimeout = "timeout"
	OutcomeUnknown = "unknown"
)

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pgdesk",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Backend requests by endpoint, method and outcome.",
			},
			[]string{"endpoint", "method", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pgdesk",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Backend request latency.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30},
			},
			[]string{"endpoint", "method"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

func (m *Metrics) observe(endpoint, method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, method, outcome).Inc()
	m.RequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}
