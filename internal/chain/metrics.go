package chain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stakecore",
		Subsystem: "executor",
		Name:      "transactions_delivered_total",
		Help:      "Number of transactions delivered, by type and status code.",
	}, []string{"type", "code"})

	mExecutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakecore",
		Subsystem: "executor",
		Name:      "execution_duration_seconds",
		Help:      "Time spent executing and committing a transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type"})
)
