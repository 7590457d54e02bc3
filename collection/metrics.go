package collection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	asyncOperations = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "keyed_collection_async_operations_total",
		Help: "The total number of async collection operations started",
	}, []string{"collection", "operation"})

	asyncInvocations = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "keyed_collection_async_invocations_total",
		Help: "The total number of per-entry invocations started by async operations",
	}, []string{"collection", "operation"})

	asyncInvocationFailures = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "keyed_collection_async_invocation_failures_total",
		Help: "The total number of per-entry invocations that failed or panicked",
	}, []string{"collection", "operation"})

	asyncAbandoned = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "keyed_collection_async_abandoned_total",
		Help: "The total number of invocations still running when their operation returned",
	}, []string{"collection", "operation"})

	asyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "keyed_collection_async_duration_seconds",
		Help:    "Time from the start of an async operation until it returned",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "operation"})
)
