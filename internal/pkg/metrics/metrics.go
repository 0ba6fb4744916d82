package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service-level prometheus collectors, registered on the default registry
// and exposed by the router at /metrics.
var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "insights",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Upstream HRIS API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "insights",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Upstream HRIS API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "insights",
		Subsystem: "upstream",
		Name:      "pages_fetched_total",
		Help:      "Event pages consumed by the paginated fetcher.",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "insights",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Report cache hits.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "insights",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Report cache misses.",
	})
)
