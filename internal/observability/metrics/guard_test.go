package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardMetrics_RecordsAndRegisters(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewGuardMetrics(reg)

	m.RecordDecision("member", "render")
	m.RecordDecision("member", "render")
	m.RecordDecision("admin", "redirect_login")
	m.RecordUpstreamLatency(120 * time.Millisecond)
	m.RecordStoreClear("unauthorized")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.decisions.WithLabelValues("member", "render")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.decisions.WithLabelValues("admin", "redirect_login")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.storeClears.WithLabelValues("unauthorized")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["membergate_guard_decisions_total"])
	assert.True(t, names["membergate_upstream_latency_seconds"])
	assert.True(t, names["membergate_credential_clears_total"])
}

func TestGuardMetrics_NilSafe(t *testing.T) {
	var m *GuardMetrics

	assert.NotPanics(t, func() {
		m.RecordDecision("member", "render")
		m.RecordUpstreamLatency(time.Second)
		m.RecordStoreClear("logout")
	})
}
