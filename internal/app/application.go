package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"newsdesk.app/internal/adapters/api"
	"newsdesk.app/internal/adapters/infrastructure"
	"newsdesk.app/internal/adapters/scheduler"
	"newsdesk.app/internal/config"
	"newsdesk.app/internal/core/newspaper"
	"newsdesk.app/internal/core/subscriber"
	"newsdesk.app/internal/core/subscription"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/logger"
)

const idleTimeout = 60 * time.Second

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Use Cases
	subscriberUseCase   *subscriber.UseCase
	newspaperUseCase    *newspaper.UseCase
	subscriptionUseCase *subscription.UseCase

	// Adapters
	httpServer      *http.Server
	router          *gin.Engine
	expiryScheduler *scheduler.ExpiryScheduler

	// Infrastructure
	ports          *ports.ApplicationPorts
	tracerProvider *sdktrace.TracerProvider

	// done is closed once Shutdown has released every resource
	done         chan struct{}
	shutdownOnce sync.Once
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	slog.SetDefault(logger.NewWithLevel(logger.ParseLevel(cfg.Log.Level)).Logger)

	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application from an existing container
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
		done:   make(chan struct{}),
	}

	if err := app.initializeTracing(); err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeTracing() error {
	if !a.config.Tracing.Enabled {
		return nil
	}

	tp, err := infrastructure.InitTracing(a.config.Tracing.ServiceName, a.config.Tracing.ServiceVersion, os.Stdout)
	if err != nil {
		return err
	}
	a.tracerProvider = tp
	slog.Info("Tracing enabled", "service", a.config.Tracing.ServiceName)
	return nil
}

func (a *Application) initializeUseCases() error {
	if !a.ports.Connected() {
		slog.Warn("Skipping use case initialization: no database connection")
		return nil
	}

	slog.Info("Initializing use cases...")

	subscriberUseCase, err := subscriber.NewUseCase(subscriber.UseCaseDependencies{
		SubscriberRepo:   a.ports.SubscriberRepository,
		SubscriptionRepo: a.ports.SubscriptionRepository,
		Transactor:       a.ports.Transactor,
		Clock:            a.ports.Clock,
		Cache:            a.ports.StatsCache,
		Metrics:          a.ports.Metrics,
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create subscriber use case: %w", err)
	}
	a.subscriberUseCase = subscriberUseCase

	newspaperUseCase, err := newspaper.NewUseCase(newspaper.UseCaseDependencies{
		NewspaperRepo:    a.ports.NewspaperRepository,
		SubscriptionRepo: a.ports.SubscriptionRepository,
		Transactor:       a.ports.Transactor,
		Clock:            a.ports.Clock,
		Cache:            a.ports.StatsCache,
		Metrics:          a.ports.Metrics,
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create newspaper use case: %w", err)
	}
	a.newspaperUseCase = newspaperUseCase

	subscriptionUseCase, err := subscription.NewUseCase(subscription.UseCaseDependencies{
		SubscriptionRepo: a.ports.SubscriptionRepository,
		SubscriberRepo:   a.ports.SubscriberRepository,
		NewspaperRepo:    a.ports.NewspaperRepository,
		Transactor:       a.ports.Transactor,
		Clock:            a.ports.Clock,
		Cache:            a.ports.StatsCache,
		Metrics:          a.ports.Metrics,
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create subscription use case: %w", err)
	}
	a.subscriptionUseCase = subscriptionUseCase

	a.expiryScheduler = scheduler.NewExpiryScheduler(
		subscriptionUseCase,
		a.config.Scheduler.ExpirySweepSchedule,
		a.ports.Logger,
		a.deps.Metrics().SweepJob,
	)

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DatabaseChecker: infrastructure.NewDatabaseHealthChecker(a.deps.Database()),
		CacheChecker: infrastructure.NewCacheHealthChecker(
			a.ports.CacheProvider, a.ports.CacheMetrics, a.config.Cache.Type.String()),
		ConfigProvider: a.ports.ConfigProvider,
	})

	serverConfig := api.ServerConfig{
		Port:       a.config.Server.Port,
		CORSOrigin: a.config.Server.CORSOrigin,
	}
	if a.tracerProvider != nil {
		serverConfig.TracingServiceName = a.config.Tracing.ServiceName
	}

	opts := api.ServerOptions{
		Config:        serverConfig,
		HealthChecker: systemHealthChecker,
		Metrics:       a.deps.Metrics(),
		Degraded:      !a.ports.Connected(),
	}
	// Typed nil pointers would defeat the interface nil checks
	if a.ports.Connected() {
		opts.SubscriberUseCase = a.subscriberUseCase
		opts.NewspaperUseCase = a.newspaperUseCase
		opts.SubscriptionUseCase = a.subscriptionUseCase
	}

	httpAdapter, err := api.NewHTTPServerAdapter(opts)
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  idleTimeout,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start runs the HTTP server. After a graceful stop it returns only once
// Shutdown has finished, so callers may exit as soon as it returns.
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...", "degraded", !a.ports.Connected())

	if err := a.startScheduler(ctx); err != nil {
		return err
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	a.Wait()
	return nil
}

// Wait blocks until Shutdown has completed
func (a *Application) Wait() {
	<-a.done
}

// startScheduler sweeps overdue subscriptions once and then, when a schedule
// is configured, on every tick. Nothing runs in degraded mode.
func (a *Application) startScheduler(ctx context.Context) error {
	if a.expiryScheduler == nil {
		return nil
	}

	a.expiryScheduler.RunOnce(ctx, "startup")

	if a.config.Scheduler.ExpirySweepSchedule == "" {
		slog.Info("Periodic expiry sweep disabled")
		return nil
	}
	if err := a.expiryScheduler.Start(ctx); err != nil {
		return fmt.Errorf("start expiry scheduler: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")
	defer a.shutdownOnce.Do(func() { close(a.done) })

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if a.expiryScheduler != nil {
		a.expiryScheduler.Stop()
	}

	if err := infrastructure.ShutdownTracing(ctx, a.tracerProvider); err != nil {
		slog.Warn("Error shutting down tracer provider", "error", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Degraded reports whether the application runs without a database
func (a *Application) Degraded() bool {
	return !a.ports.Connected()
}
