package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"newsdesk.app/internal/config"
	"newsdesk.app/internal/ports"
)

type pingableCache struct {
	ports.CacheProvider
	err error
}

func (p pingableCache) Ping(context.Context) error { return p.err }

func TestDatabaseHealthChecker(t *testing.T) {
	t.Run("nil_database", func(t *testing.T) {
		status := NewDatabaseHealthChecker(nil).Check(context.Background())
		assert.Equal(t, "unhealthy", status.Status)
		assert.Equal(t, false, status.Details["connected"])
	})

	t.Run("connected", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)

		status := NewDatabaseHealthChecker(db).Check(context.Background())
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, true, status.Details["connected"])
	})

	t.Run("closed", func(t *testing.T) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		status := NewDatabaseHealthChecker(db).Check(context.Background())
		assert.Equal(t, "unhealthy", status.Status)
		assert.NotEmpty(t, status.Error)
	})
}

func TestCacheHealthChecker(t *testing.T) {
	metrics := fixedCacheMetrics{stats: ports.CacheStats{Hits: 2, Misses: 2, HitRatio: 0.5}}

	t.Run("missing_provider", func(t *testing.T) {
		status := NewCacheHealthChecker(nil, nil, "memory").Check(context.Background())
		assert.Equal(t, "unhealthy", status.Status)
	})

	t.Run("disabled", func(t *testing.T) {
		status := NewCacheHealthChecker(nil, nil, "none").Check(context.Background())
		assert.Equal(t, "disabled", status.Status)
		assert.Empty(t, status.Error)
	})

	t.Run("ping_failure", func(t *testing.T) {
		status := NewCacheHealthChecker(pingableCache{err: errors.New("connection refused")}, metrics, "redis").
			Check(context.Background())
		assert.Equal(t, "unhealthy", status.Status)
		assert.Equal(t, "connection refused", status.Error)
	})

	t.Run("healthy_with_stats", func(t *testing.T) {
		status := NewCacheHealthChecker(pingableCache{}, metrics, "redis").Check(context.Background())
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "redis", status.Details["type"])
		assert.Equal(t, int64(2), status.Details["hits"])
		assert.Equal(t, 0.5, status.Details["hit_ratio"])
	})
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	cfg := &config.Config{
		Database:  config.DatabaseConfig{Host: "db", Name: "newspaper_subscription"},
		Cache:     config.CacheConfig{Type: config.CacheTypeMemory, StatsTTLSeconds: 30},
		Scheduler: config.SchedulerConfig{ExpirySweepSchedule: "@daily"},
	}

	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		DatabaseChecker: NewDatabaseHealthChecker(nil),
		CacheChecker:    NewCacheHealthChecker(pingableCache{}, nil, "memory"),
		ConfigProvider:  NewConfigProviderAdapter(cfg),
	})

	results := checker.CheckAll(context.Background())
	require.Len(t, results, 3)
	assert.Equal(t, "unhealthy", results["database"].Status)
	assert.Equal(t, "healthy", results["cache"].Status)
	assert.Equal(t, "newspaper_subscription", results["config"].Details["database"])
	assert.Equal(t, true, results["config"].Details["expiry_sweep"])
	assert.Equal(t, "memory", results["config"].Details["stats_cache"])
}

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8001, CORSOrigin: "http://localhost:3000"},
		Database: config.DatabaseConfig{
			Host: "localhost", Port: 5432, User: "postgres", Password: "secret",
			Name: "newspaper_subscription", SSLMode: "disable",
		},
		Cache:     config.CacheConfig{Type: config.CacheTypeRedis, StatsTTLSeconds: 45},
		Scheduler: config.SchedulerConfig{ExpirySweepSchedule: "0 0 * * *"},
	}
	provider := NewConfigProviderAdapter(cfg)

	assert.Equal(t, ports.ServerConfig{Port: 8001, CORSOrigin: "http://localhost:3000"}, provider.GetServerConfig())
	assert.Equal(t, ports.DatabaseConfig{Host: "localhost", Port: 5432, Name: "newspaper_subscription", SSLMode: "disable"},
		provider.GetDatabaseConfig())
	assert.Equal(t, ports.CacheConfig{Type: "redis", StatsTTL: 45 * time.Second}, provider.GetCacheConfig())
	assert.Equal(t, "0 0 * * *", provider.GetSchedulerConfig().ExpirySweepSchedule)
}

func TestSystemClock_ReturnsUTC(t *testing.T) {
	now := SystemClock{}.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}
