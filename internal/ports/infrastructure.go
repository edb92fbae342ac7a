package ports

import (
	"time"
)

// ServerConfig represents server configuration
type ServerConfig struct {
	Port       int
	CORSOrigin string
}

// DatabaseConfig represents database configuration without credentials
type DatabaseConfig struct {
	Host    string
	Port    int
	Name    string
	SSLMode string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type     string
	StatsTTL time.Duration
}

// SchedulerConfig represents scheduler configuration
type SchedulerConfig struct {
	ExpirySweepSchedule string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetServerConfig() ServerConfig
	GetDatabaseConfig() DatabaseConfig
	GetCacheConfig() CacheConfig
	GetSchedulerConfig() SchedulerConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Clock supplies the current time. Tests pin it.
type Clock interface {
	Now() time.Time
}

// DomainMetrics records business events
type DomainMetrics interface {
	RecordCreated(resource string)
	RecordUpdated(resource string)
	RecordDeleted(resource string)
	RecordConflict(resource, code string)
	RecordExpired(count int64)
}

// Resource names used for metrics labels and log fields
const (
	ResourceSubscriber   = "subscriber"
	ResourceNewspaper    = "newspaper"
	ResourceSubscription = "subscription"
)
