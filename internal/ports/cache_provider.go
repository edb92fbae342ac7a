package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching operations
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheStats represents cache performance counters
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
}

// StatsCache caches aggregate responses. It is best effort: failures are
// logged by the implementation and reported as misses.
//
// Load returns the generation of key it observed. Store only publishes a
// value under that generation, so a value computed before an Invalidate is
// never served after it.
type StatsCache interface {
	Load(ctx context.Context, key string, dest interface{}) (generation string, hit bool)
	Store(ctx context.Context, key, generation string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

// Stats cache keys
const (
	StatsKeySubscribers   = "stats:subscribers"
	StatsKeyNewspapers    = "stats:newspapers"
	StatsKeySubscriptions = "stats:subscriptions"
)
