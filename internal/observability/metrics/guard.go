// Package metrics collects and exposes Prometheus metrics for the
// session gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GuardRecorder is the interface the guard uses to record outcomes.
// A nil *GuardMetrics satisfies callers via the nil-safe methods below.
type GuardRecorder interface {
	RecordDecision(view, outcome string)
	RecordUpstreamLatency(d time.Duration)
	RecordStoreClear(cause string)
}

// GuardMetrics collects guard decisions, upstream API latency, and
// credential-store clears.
type GuardMetrics struct {
	decisions       *prometheus.CounterVec
	upstreamLatency prometheus.Histogram
	storeClears     *prometheus.CounterVec
}

// NewGuardMetrics creates the collectors and registers them on reg.
func NewGuardMetrics(reg prometheus.Registerer) *GuardMetrics {
	m := &GuardMetrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "membergate_guard_decisions_total",
			Help: "Guard decisions by required view role and decision kind.",
		}, []string{"view", "outcome"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "membergate_upstream_latency_seconds",
			Help:    "Latency of role-scoped requests to the membership API.",
			Buckets: prometheus.DefBuckets,
		}),
		storeClears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "membergate_credential_clears_total",
			Help: "Credential store clears by cause.",
		}, []string{"cause"}),
	}

	reg.MustRegister(m.decisions, m.upstreamLatency, m.storeClears)
	return m
}

// RecordDecision counts one terminal guard decision for a view.
func (m *GuardMetrics) RecordDecision(view, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(view, outcome).Inc()
}

// RecordUpstreamLatency observes one round trip to the membership API.
func (m *GuardMetrics) RecordUpstreamLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.Observe(d.Seconds())
}

// RecordStoreClear counts one credential-store clear with its cause
// (decode_failed, invalid_claims, unauthorized, stale_profile, logout).
func (m *GuardMetrics) RecordStoreClear(cause string) {
	if m == nil {
		return
	}
	m.storeClears.WithLabelValues(cause).Inc()
}
