package external

import (
	"sync/atomic"
	"time"

	"newsdesk.app/internal/ports"
)

// hitCounter tracks cache hits and misses for ports.CacheMetrics
type hitCounter struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func (c *hitCounter) RecordHit() {
	c.hits.Add(1)
}

func (c *hitCounter) RecordMiss() {
	c.misses.Add(1)
}

func (c *hitCounter) GetStats() ports.CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}
