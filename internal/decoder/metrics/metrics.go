package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decoder module.
type Metrics struct {
	// Classification outcomes by validity
	Classifications *prometheus.CounterVec

	// Proposals produced, by the validity of the input
	Proposals *prometheus.CounterVec

	// WMI name resolution latency
	DescribeLatency prometheus.Histogram
}

// New registers decoder metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vinkit_decoder_classifications_total",
			Help: "Total VIN classifications by validity",
		}, []string{"validity"}), // validity: "invalid", "valid", "valid_with_checksum"

		Proposals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vinkit_decoder_proposals_total",
			Help: "Total VIN proposals by input validity",
		}, []string{"input_validity"}),

		DescribeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vinkit_decoder_describe_duration_seconds",
			Help:    "Duration of WMI region, country and manufacturer resolution",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

// IncrementClassification records one classification.
func (m *Metrics) IncrementClassification(validity string) {
	if m != nil {
		m.Classifications.WithLabelValues(validity).Inc()
	}
}

// IncrementProposal records one proposal.
func (m *Metrics) IncrementProposal(inputValidity string) {
	if m != nil {
		m.Proposals.WithLabelValues(inputValidity).Inc()
	}
}

// ObserveDescribeLatency records the WMI resolution duration.
func (m *Metrics) ObserveDescribeLatency(d time.Duration) {
	if m != nil {
		m.DescribeLatency.Observe(d.Seconds())
	}
}
