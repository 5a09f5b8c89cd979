// Package metrics exposes calculator activity as Prometheus counters.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quarter"

// Prometheus implements ports.QuarterMetrics.
type Prometheus struct {
	computed    *prometheus.CounterVec
	zoneFailure prometheus.Counter
}

// NewPrometheus registers the quarter counters with reg.
// A nil reg uses prometheus.DefaultRegisterer, which backs /-/metrics.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Prometheus{
		computed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boundaries_computed_total",
			Help:      "Quarter boundaries computed, by edge, offset and whether a zone was applied.",
		}, []string{"edge", "offset", "zoned"}),
		zoneFailure: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zone_lookup_failures_total",
			Help:      "Time zone names that could not be resolved.",
		}),
	}
}

// BoundaryComputed implements ports.QuarterMetrics.
func (p *Prometheus) BoundaryComputed(edge, offset string, zoned bool) {
	p.computed.WithLabelValues(edge, offset, strconv.FormatBool(zoned)).Inc()
}

// ZoneLookupFailed implements ports.QuarterMetrics.
func (p *Prometheus) ZoneLookupFailed() {
	p.zoneFailure.Inc()
}
