package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks upstream fetch and cache behavior.
type Metrics struct {
	FetchTotal  prometheus.Counter
	FetchErrors prometheus.Counter
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewMetrics creates and registers the upstream metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "netatlas_upstream_fetch_total",
			Help: "Total number of topology fetches against the upstream scanner.",
		}),
		FetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "netatlas_upstream_fetch_errors_total",
			Help: "Total number of failed topology fetches.",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "netatlas_snapshot_cache_hits_total",
			Help: "Total number of snapshot requests served from the cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "netatlas_snapshot_cache_misses_total",
			Help: "Total number of snapshot requests that required an upstream fetch.",
		}),
	}
}
