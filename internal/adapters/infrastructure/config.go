package infrastructure

import (
	"time"

	"newsdesk.app/internal/config"
	"newsdesk.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port. Credentials
// never leave the config package through it.
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port:       c.config.Server.Port,
		CORSOrigin: c.config.Server.CORSOrigin,
	}
}

// GetDatabaseConfig returns database configuration
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	return ports.DatabaseConfig{
		Host:    c.config.Database.Host,
		Port:    c.config.Database.Port,
		Name:    c.config.Database.Name,
		SSLMode: c.config.Database.SSLMode,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type:     c.config.Cache.Type.String(),
		StatsTTL: time.Duration(c.config.Cache.StatsTTLSeconds) * time.Second,
	}
}

// GetSchedulerConfig returns scheduler configuration
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	return ports.SchedulerConfig{
		ExpirySweepSchedule: c.config.Scheduler.ExpirySweepSchedule,
	}
}
