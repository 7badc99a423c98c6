package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vultisig/balances/internal/balance"
)

var (
	balanceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balances",
			Subsystem: "fetcher",
			Name:      "fetches_total",
			Help:      "Total number of balance fetches",
		},
		[]string{"chain", "kind", "status"}, // kind: native, token
	)

	// Dropped token balances, a subset of fetches_total with status=error
	balanceTokenFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "balances",
			Subsystem: "fetcher",
			Name:      "token_failures_total",
			Help:      "Total number of token balances dropped from results",
		},
		[]string{"chain"},
	)

	balanceRegisteredChains = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "balances",
			Subsystem: "fetcher",
			Name:      "registered_chains",
			Help:      "Number of chains with a configured fetcher",
		},
	)
)

// BalanceMetrics records fetch outcomes. It implements balance.Recorder.
type BalanceMetrics struct{}

func NewBalanceMetrics() *BalanceMetrics {
	return &BalanceMetrics{}
}

var _ balance.Recorder = (*BalanceMetrics)(nil)

func (bm *BalanceMetrics) RecordFetch(chain, kind, status string) {
	balanceFetchesTotal.WithLabelValues(chain, kind, status).Inc()
	if kind == balance.KindToken && status == balance.StatusError {
		balanceTokenFailuresTotal.WithLabelValues(chain).Inc()
	}
}

func (bm *BalanceMetrics) SetRegisteredChains(count int) {
	balanceRegisteredChains.Set(float64(count))
}
