package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	psbtRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balances",
			Subsystem: "psbt",
			Name:      "rejections_total",
			Help:      "Total number of PSBTs rejected before signing",
		},
		[]string{"reason"},
	)

	psbtValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balances",
			Subsystem: "psbt",
			Name:      "validations_total",
			Help:      "Total number of PSBT validation requests",
		},
		[]string{"status"}, // valid, rejected
	)
)

// PSBTMetrics records validator outcomes.
type PSBTMetrics struct{}

func NewPSBTMetrics() *PSBTMetrics {
	return &PSBTMetrics{}
}

func (pm *PSBTMetrics) RecordRejection(reason string) {
	psbtRejectionsTotal.WithLabelValues(reason).Inc()
	psbtValidationsTotal.WithLabelValues("rejected").Inc()
}

func (pm *PSBTMetrics) RecordValid() {
	psbtValidationsTotal.WithLabelValues("valid").Inc()
}
