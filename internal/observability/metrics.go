// Package observability exposes prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plume_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedCacheHits counts home-feed responses served from cache.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plume_feed_cache_hits_total",
		Help: "Total number of home-feed requests served from cache",
	})

	// FeedCacheMisses counts home-feed responses composed from storage.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plume_feed_cache_misses_total",
		Help: "Total number of home-feed requests composed from storage",
	})
)
