// Package metrics exposes Prometheus counters for registration and login outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels.
const (
	OutcomeSuccess     = "success"
	OutcomeInvalid     = "invalid"
	OutcomeMismatch    = "mismatch"
	OutcomeTaken       = "taken"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Recorder counts service outcomes. A nil *Recorder records nothing.
type Recorder struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
}

// New creates the identity counters and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identity_registrations_total",
				Help: "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identity_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(r.registrations)
	reg.MustRegister(r.logins)

	return r
}

// NewRegistry returns a registry with the Go runtime and process collectors
// already registered.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// Registration records one registration attempt.
func (r *Recorder) Registration(outcome string) {
	if r == nil {
		return
	}
	r.registrations.WithLabelValues(outcome).Inc()
}

// Login records one login attempt.
func (r *Recorder) Login(outcome string) {
	if r == nil {
		return
	}
	r.logins.WithLabelValues(outcome).Inc()
}
