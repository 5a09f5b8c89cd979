package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quarter-service/internal/ports"
)

var _ ports.QuarterMetrics = (*Prometheus)(nil)

func TestPrometheus_BoundaryComputed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg)

	m.BoundaryComputed("start", "current", true)
	m.BoundaryComputed("start", "current", true)
	m.BoundaryComputed("end", "next", false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.computed.WithLabelValues("start", "current", "true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.computed.WithLabelValues("end", "next", "false")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.computed))
}

func TestPrometheus_ZoneLookupFailed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg)

	m.ZoneLookupFailed()

	expected := `
# HELP quarter_zone_lookup_failures_total Time zone names that could not be resolved.
# TYPE quarter_zone_lookup_failures_total counter
quarter_zone_lookup_failures_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"quarter_zone_lookup_failures_total"))
}

func TestNewPrometheus_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)

	assert.Panics(t, func() { NewPrometheus(reg) })
}
