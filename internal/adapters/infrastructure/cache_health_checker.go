package infrastructure

import (
	"context"

	"newsdesk.app/internal/ports"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker reports the state of the stats cache backend. Redis
// is pinged; other backends are assumed healthy.
type CacheHealthChecker struct {
	provider  ports.CacheProvider
	metrics   ports.CacheMetrics
	cacheType string
}

// NewCacheHealthChecker creates a cache health checker
func NewCacheHealthChecker(provider ports.CacheProvider, metrics ports.CacheMetrics, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{
		provider:  provider,
		metrics:   metrics,
		cacheType: cacheType,
	}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    "healthy",
		Details:   map[string]interface{}{"type": c.cacheType},
	}

	if c.provider == nil && c.cacheType == "none" {
		status.Status = "disabled"
		return status
	}
	if c.provider == nil {
		status.Status = "unhealthy"
		status.Error = "cache provider is not available"
		return status
	}

	if p, ok := c.provider.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			status.Status = "unhealthy"
			status.Error = err.Error()
			return status
		}
	}

	if c.metrics != nil {
		stats := c.metrics.GetStats()
		status.Details["hits"] = stats.Hits
		status.Details["misses"] = stats.Misses
		status.Details["hit_ratio"] = stats.HitRatio
	}

	return status
}
