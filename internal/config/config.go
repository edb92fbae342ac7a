package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"newsdesk.app/pkg/errors"
)

const (
	maxRedisDB          = 15
	maxStatsTTLSeconds  = 3600
	maxPortNumber       = 65535
	maxOpenConnsCeiling = 1000
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
	Log       LogConfig       `split_words:"true"`
	Tracing   TracingConfig   `split_words:"true"`
}

type ServerConfig struct {
	Port         int    `envconfig:"SERVER_PORT" default:"8001"`
	CORSOrigin   string `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	ReadTimeout  int    `envconfig:"SERVER_READ_TIMEOUT" default:"30"`
	WriteTimeout int    `envconfig:"SERVER_WRITE_TIMEOUT" default:"30"`
}

type DatabaseConfig struct {
	Host           string `envconfig:"DB_HOST" default:"localhost"`
	Port           int    `envconfig:"DB_PORT" default:"5432"`
	User           string `envconfig:"DB_USER" default:"postgres"`
	Password       string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name           string `envconfig:"DB_NAME" default:"newspaper_subscription"`
	SSLMode        string `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns   int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	ConnectTimeout int    `envconfig:"DB_CONNECT_TIMEOUT" default:"5"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.ConnectTimeout)
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	// CacheTypeNone serves every stats request straight from the database
	CacheTypeNone
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeNone:
		return "none"
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeNone || c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "none":
		return CacheTypeNone
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type            CacheType   `envconfig:"CACHE_TYPE" default:"none"`
	StatsTTLSeconds int         `envconfig:"STATS_CACHE_TTL_SECONDS" default:"30"`
	Redis           RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// SchedulerConfig controls the periodic expiry sweep. An empty schedule
// disables it; the sweep still runs once at startup.
type SchedulerConfig struct {
	ExpirySweepSchedule string `envconfig:"EXPIRY_SWEEP_SCHEDULE" default:""`
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	FilePath string `envconfig:"LOG_FILE_PATH" default:""`
}

type TracingConfig struct {
	Enabled        bool   `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName    string `envconfig:"TRACING_SERVICE_NAME" default:"newsdesk"`
	ServiceVersion string `envconfig:"TRACING_SERVICE_VERSION" default:"1.0.0"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if strings.TrimSpace(s.CORSOrigin) == "" {
		return errors.NewConfigurationError("CORS_ORIGIN cannot be empty", nil)
	}
	if s.CORSOrigin != "*" && !strings.HasPrefix(s.CORSOrigin, "http://") && !strings.HasPrefix(s.CORSOrigin, "https://") {
		return errors.NewConfigurationError("CORS_ORIGIN must be * or start with http:// or https://", nil)
	}
	if s.ReadTimeout < 1 || s.WriteTimeout < 1 {
		return errors.NewConfigurationError("SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if d.MaxOpenConns < 1 || d.MaxOpenConns > maxOpenConnsCeiling {
		return errors.NewConfigurationError("DB_MAX_OPEN_CONNS must be between 1 and 1000", nil)
	}
	if d.ConnectTimeout < 1 {
		return errors.NewConfigurationError("DB_CONNECT_TIMEOUT must be at least 1 second", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: none, memory, redis", nil)
	}
	if c.StatsTTLSeconds < 1 || c.StatsTTLSeconds > maxStatsTTLSeconds {
		return errors.NewConfigurationError("STATS_CACHE_TTL_SECONDS must be between 1 and 3600", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

// Validate accepts an empty schedule or a standard five-field cron
// expression (descriptors such as @daily included).
func (s *SchedulerConfig) Validate() error {
	if strings.TrimSpace(s.ExpirySweepSchedule) == "" {
		return nil
	}
	if _, err := cron.ParseStandard(s.ExpirySweepSchedule); err != nil {
		return errors.NewConfigurationError("EXPIRY_SWEEP_SCHEDULE is not a valid cron expression", err)
	}
	return nil
}

func (l *LogConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
}

func (t *TracingConfig) Validate() error {
	if t.Enabled && strings.TrimSpace(t.ServiceName) == "" {
		return errors.NewConfigurationError("TRACING_SERVICE_NAME cannot be empty when tracing is enabled", nil)
	}
	return nil
}
