package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the auth surface.
type Metrics struct {
	// LoginAttemptsTotal counts login attempts by method (password,
	// apikey, cookie, bootstrap) and outcome (success, failure).
	LoginAttemptsTotal *prometheus.CounterVec

	// LogoutsTotal counts logout requests.
	LogoutsTotal prometheus.Counter

	// CORSRequestsTotal counts cross-origin requests by decision
	// (allowed, denied) and whether they were preflights.
	CORSRequestsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sflow_login_attempts_total",
				Help: "Total number of login attempts by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		LogoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sflow_logouts_total",
				Help: "Total number of logout requests",
			},
		),
		CORSRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sflow_cors_requests_total",
				Help: "Total number of cross-origin requests by decision",
			},
			[]string{"decision", "preflight"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.LoginAttemptsTotal,
		m.LogoutsTotal,
		m.CORSRequestsTotal,
	)

	return m
}

// Handler returns an HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordLogin increments the login counter for a method and outcome.
func (m *Metrics) RecordLogin(method string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.LoginAttemptsTotal.WithLabelValues(method, outcome).Inc()
}

// RecordCORS increments the CORS counter.
func (m *Metrics) RecordCORS(allowed, preflight bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	pf := "false"
	if preflight {
		pf = "true"
	}
	m.CORSRequestsTotal.WithLabelValues(decision, pf).Inc()
}
