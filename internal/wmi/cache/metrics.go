package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks cache effectiveness per layer.
type Metrics struct {
	Lookups       *prometheus.CounterVec
	LookupLatency *prometheus.HistogramVec
}

// NewMetrics registers cache metrics with reg. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vinkit_wmi_cache_lookups_total",
			Help: "WMI cache lookups by layer and result",
		}, []string{"layer", "result"}), // result: "hit", "miss"

		LookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vinkit_wmi_cache_lookup_duration_seconds",
			Help:    "Duration of WMI cache lookups by layer",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"layer"}),
	}
}

func (m *Metrics) recordHit(layer string, start time.Time) {
	if m != nil {
		m.Lookups.WithLabelValues(layer, "hit").Inc()
		m.LookupLatency.WithLabelValues(layer).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) recordMiss(layer string, start time.Time) {
	if m != nil {
		m.Lookups.WithLabelValues(layer, "miss").Inc()
		m.LookupLatency.WithLabelValues(layer).Observe(time.Since(start).Seconds())
	}
}
