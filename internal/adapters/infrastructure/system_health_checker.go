package infrastructure

import (
	"context"

	"newsdesk.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	databaseChecker ports.DatabaseHealthChecker
	cacheChecker    ports.CacheHealthChecker
	configProvider  ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	DatabaseChecker ports.DatabaseHealthChecker
	CacheChecker    ports.CacheHealthChecker
	ConfigProvider  ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		databaseChecker: config.DatabaseChecker,
		cacheChecker:    config.CacheChecker,
		configProvider:  config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.databaseChecker != nil {
		results["database"] = s.databaseChecker.Check(ctx)
	}

	if s.cacheChecker != nil {
		results["cache"] = s.cacheChecker.Check(ctx)
	}

	if s.configProvider != nil {
		db := s.configProvider.GetDatabaseConfig()
		scheduler := s.configProvider.GetSchedulerConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"database":      db.Name,
				"database_host": db.Host,
				"expiry_sweep":  scheduler.ExpirySweepSchedule != "",
				"stats_cache":   s.configProvider.GetCacheConfig().Type,
			},
		}
	}

	return results
}
