package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"plume/internal/observability"

	"github.com/redis/go-redis/v9"
)

// homeFeedKey is the single cache key: the home feed is viewer-independent,
// so the cache holds exactly one entry.
const homeFeedKey = "feed:home"

// DefaultFeedTTL bounds how stale a cached home feed may get. A freshly
// published post can take up to this long to appear.
const DefaultFeedTTL = 20 * time.Second

// Clock abstracts time retrieval so expiry logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type feedEntry struct {
	payload   []byte
	expiresAt time.Time
}

// FeedCache stores the fully composed home feed. Backed by Redis when a
// client is available; otherwise a process-local slot updated copy-on-write,
// so concurrent readers keep serving the entry a writer is replacing.
// Clear racing a fill is last-writer-wins, which staleness tolerance already
// permits.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
	clock  Clock
	slot   atomic.Pointer[feedEntry]
}

// NewFeedCache creates a home-feed cache with the given TTL. client may be
// nil, which selects the in-process slot.
func NewFeedCache(client *redis.Client, ttl time.Duration, clock Clock) *FeedCache {
	if ttl <= 0 {
		ttl = DefaultFeedTTL
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &FeedCache{client: client, ttl: ttl, clock: clock}
}

// Get returns the cached feed payload, if present and unexpired.
func (c *FeedCache) Get(ctx context.Context) ([]byte, bool) {
	if c.client != nil {
		payload, err := c.client.Get(ctx, homeFeedKey).Bytes()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				// Treat a Redis failure as a miss; the feed is recomposed from storage.
				observability.RedisErrorRate.WithLabelValues("get").Inc()
			}
			observability.FeedCacheMisses.Inc()
			return nil, false
		}
		observability.FeedCacheHits.Inc()
		return payload, true
	}

	entry := c.slot.Load()
	if entry == nil || c.clock.Now().After(entry.expiresAt) {
		observability.FeedCacheMisses.Inc()
		return nil, false
	}
	observability.FeedCacheHits.Inc()
	return entry.payload, true
}

// Set stores the feed payload for the TTL window. Failures are swallowed:
// caching is best-effort and the store remains authoritative.
func (c *FeedCache) Set(ctx context.Context, payload []byte) {
	if c.client != nil {
		if err := c.client.Set(ctx, homeFeedKey, payload, c.ttl).Err(); err != nil {
			observability.RedisErrorRate.WithLabelValues("set").Inc()
		}
		return
	}

	c.slot.Store(&feedEntry{payload: payload, expiresAt: c.clock.Now().Add(c.ttl)})
}

// Clear drops the cached entry immediately. Exposed to administrative and
// test paths; the regular invalidation mechanism is TTL expiry.
func (c *FeedCache) Clear(ctx context.Context) {
	if c.client != nil {
		if err := c.client.Del(ctx, homeFeedKey).Err(); err != nil {
			observability.RedisErrorRate.WithLabelValues("del").Inc()
		}
		return
	}

	c.slot.Store(nil)
}

// TTL reports the configured expiry window.
func (c *FeedCache) TTL() time.Duration {
	return c.ttl
}
