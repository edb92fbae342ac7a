package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"newsdesk.app/internal/adapters/database"
	"newsdesk.app/internal/adapters/external"
	"newsdesk.app/internal/adapters/infrastructure"
	"newsdesk.app/internal/config"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/logger"
)

const metricsNamespace = "newsdesk"

// DatabaseOpener connects to the database described by cfg
type DatabaseOpener func(cfg config.DatabaseConfig) (*gorm.DB, error)

type DependencyContainer struct {
	config  *config.Config
	open    DatabaseOpener
	db      *gorm.DB
	cache   ports.CacheProvider
	metrics *infrastructure.Metrics
	closers []io.Closer
	ports   *ports.ApplicationPorts
}

// NewDependencyContainer wires the production adapters. A database that
// cannot be reached leaves the container in degraded mode instead of failing.
func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	return NewDependencyContainerWithDatabase(cfg, database.Open)
}

// NewDependencyContainerWithDatabase is NewDependencyContainer with a custom
// database opener
func NewDependencyContainerWithDatabase(cfg *config.Config, open DatabaseOpener) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if open == nil {
		return nil, fmt.Errorf("database opener is required")
	}

	container := &DependencyContainer{
		config: cfg,
		open:   open,
	}

	container.initializeDatabase()

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() {
	slog.Info("Initializing database connection...",
		"host", c.config.Database.Host,
		"port", c.config.Database.Port,
		"name", c.config.Database.Name)

	db, err := c.open(c.config.Database)
	if err != nil {
		slog.Warn("Database unavailable, starting in degraded mode", "error", err)
		return
	}

	slog.Info("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		slog.Warn("Database migration failed, starting in degraded mode", "error", err)
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return
	}

	c.db = db
	slog.Info("Database connection established successfully")
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	appLogger, err := c.newLogger()
	if err != nil {
		return err
	}

	var statsCache ports.StatsCache = external.DisabledStatsCache{}
	cacheProvider := c.newCacheProvider()
	c.cache = cacheProvider
	if cacheProvider != nil {
		if closer, ok := cacheProvider.(io.Closer); ok {
			c.closers = append(c.closers, closer)
		}
		statsTTL := time.Duration(c.config.Cache.StatsTTLSeconds) * time.Second
		statsCache = external.NewStatsCacheAdapter(cacheProvider, statsTTL, appLogger)
	}

	cacheMetrics, _ := cacheProvider.(ports.CacheMetrics)
	c.metrics = infrastructure.NewMetrics(metricsNamespace, cacheMetrics)

	c.ports = &ports.ApplicationPorts{
		CacheProvider:  cacheProvider,
		StatsCache:     statsCache,
		CacheMetrics:   cacheMetrics,
		ConfigProvider: infrastructure.NewConfigProviderAdapter(c.config),
		Logger:         appLogger,
		Clock:          infrastructure.SystemClock{},
		Metrics:        c.metrics,
	}

	if c.db != nil {
		c.ports.SubscriberRepository = database.NewSubscriberRepositoryAdapter(c.db)
		c.ports.NewspaperRepository = database.NewNewspaperRepositoryAdapter(c.db)
		c.ports.SubscriptionRepository = database.NewSubscriptionRepositoryAdapter(c.db)
		c.ports.Transactor = database.NewTransactorAdapter(c.db)
		c.ports.Database = c.db
	}

	slog.Info("Ports initialized successfully", "degraded", c.db == nil)
	return nil
}

// newLogger returns the domain logger. LOG_FILE_PATH switches it to a JSON
// lines file; slog is used otherwise or when the file cannot be opened.
func (c *DependencyContainer) newLogger() (ports.Logger, error) {
	level := logger.ParseLevel(c.config.Log.Level)
	if c.config.Log.FilePath == "" {
		return infrastructure.NewSlogLoggerAdapter(slog.Default()), nil
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath, level)
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return infrastructure.NewSlogLoggerAdapter(slog.Default()), nil
	}

	c.closers = append(c.closers, fileLogger)
	slog.Info("File logging enabled", "path", c.config.Log.FilePath)
	return fileLogger, nil
}

// newCacheProvider builds the configured stats cache backend, or returns
// nil when stats caching is off. Stats caching is optional, so an
// unreachable Redis falls back to process memory.
func (c *DependencyContainer) newCacheProvider() ports.CacheProvider {
	if c.config.Cache.Type == config.CacheTypeNone {
		slog.Info("Stats cache disabled")
		return nil
	}

	provider, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Warn("Failed to create cache provider, using in-memory cache",
			"type", c.config.Cache.Type.String(),
			"error", err)
		return external.NewMemoryCacheProvider()
	}

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)
	return provider
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Database returns the connection, or nil in degraded mode
func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Metrics returns the Prometheus collectors shared by HTTP and domain code
func (c *DependencyContainer) Metrics() *infrastructure.Metrics {
	return c.metrics
}

// Degraded reports whether the container runs without a database
func (c *DependencyContainer) Degraded() bool {
	return c.db == nil
}

// Cleanup releases the cache, the log file and the database connection
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil

	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
