package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeAccepted = "accepted"
)

// Metrics holds the registration counters. Each instance owns its registry,
// so several servers (or tests) can coexist in one process.
type Metrics struct {
	reg *prometheus.Registry

	Registrations *prometheus.CounterVec
	Violations    *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "regcheck_registrations_total",
			Help: "Registration payloads processed, by outcome (accepted, malformed, structure, rules)",
		}, []string{"outcome"}),
		Violations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "regcheck_violations_total",
			Help: "Violations reported, by code",
		}, []string{"code"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "regcheck_validation_duration_seconds",
			Help:    "Time spent decoding and validating one payload",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
	}
}

// ObserveAccepted records an accepted payload.
func (m *Metrics) ObserveAccepted(d time.Duration) {
	m.Registrations.WithLabelValues(OutcomeAccepted).Inc()
	m.Duration.Observe(d.Seconds())
}

// ObserveRejected records a rejected payload. kind is the report kind; codes
// holds one entry per violation.
func (m *Metrics) ObserveRejected(kind string, codes []string, d time.Duration) {
	m.Registrations.WithLabelValues(kind).Inc()
	for _, c := range codes {
		m.Violations.WithLabelValues(c).Inc()
	}
	m.Duration.Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
