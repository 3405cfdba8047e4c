package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WithdrawalTransitions counts lifecycle transitions by resulting status
	// and by what triggered them (admin, timer, user).
	WithdrawalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "withdrawal_transitions_total",
		Help: "Total withdrawal lifecycle transitions by resulting status and trigger.",
	}, []string{"status", "trigger"})

	// LedgerRefunds counts refunds applied back to wallets.
	LedgerRefunds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_refunds_total",
		Help: "Total refunds applied to wallet balances.",
	})

	// TimerFires counts scheduler callbacks by kind and outcome.
	TimerFires = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_timer_fires_total",
		Help: "Total scheduler timer callbacks by kind and outcome (applied, stale, error).",
	}, []string{"kind", "outcome"})

	// ProcessingWindow observes admin-declared processing window durations.
	ProcessingWindow = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "withdrawal_processing_window_seconds",
		Help:    "Admin-declared processing window durations.",
		Buckets: prometheus.ExponentialBuckets(60, 2, 10), // 1m .. ~8.5h
	})
)
