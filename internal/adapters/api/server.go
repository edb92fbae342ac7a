// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"newsdesk.app/internal/core/newspaper"
	"newsdesk.app/internal/core/subscriber"
	"newsdesk.app/internal/core/subscription"
	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port       int
	CORSOrigin string
	// TracingServiceName enables otelgin spans when set
	TracingServiceName string
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router              *gin.Engine
	config              ServerConfig
	subscriberUseCase   SubscriberUseCase
	newspaperUseCase    NewspaperUseCase
	subscriptionUseCase SubscriptionUseCase
	healthChecker       ports.SystemHealthChecker
	metrics             HTTPMetrics
	degraded            bool
}

// Use case interfaces that the HTTP adapter depends on
type SubscriberUseCase interface {
	List(ctx context.Context) ([]*subscriber.Subscriber, error)
	Get(ctx context.Context, id uint) (*subscriber.Subscriber, error)
	Create(ctx context.Context, params subscriber.CreateParams) (*subscriber.Subscriber, error)
	Update(ctx context.Context, id uint, params subscriber.UpdateParams) (*subscriber.Subscriber, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, keyword string) ([]*subscriber.Subscriber, error)
	Stats(ctx context.Context) (*subscriber.Stats, error)
}

type NewspaperUseCase interface {
	List(ctx context.Context) ([]*newspaper.Newspaper, error)
	Get(ctx context.Context, id uint) (*newspaper.Newspaper, error)
	Create(ctx context.Context, params newspaper.CreateParams) (*newspaper.Newspaper, error)
	Update(ctx context.Context, id uint, params newspaper.UpdateParams) (*newspaper.Newspaper, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, keyword string) ([]*newspaper.Newspaper, error)
	ByPriceRange(ctx context.Context, min, max float64) ([]*newspaper.Newspaper, error)
	ByPublisher(ctx context.Context, publisher string) ([]*newspaper.Newspaper, error)
	Stats(ctx context.Context) (*newspaper.Stats, error)
}

type SubscriptionUseCase interface {
	List(ctx context.Context) ([]*subscription.Subscription, error)
	Get(ctx context.Context, id uint) (*subscription.Subscription, error)
	Create(ctx context.Context, params subscription.CreateParams) (*subscription.Subscription, error)
	Update(ctx context.Context, id uint, params subscription.UpdateParams) (*subscription.Subscription, error)
	Delete(ctx context.Context, id uint) (bool, error)
	BySubscriber(ctx context.Context, subscriberID uint) ([]*subscription.Subscription, error)
	ByNewspaper(ctx context.Context, newspaperID uint) ([]*subscription.Subscription, error)
	ByStatus(ctx context.Context, status string) ([]*subscription.Subscription, error)
	ExpiringSoon(ctx context.Context, days int) ([]*subscription.Subscription, error)
	Search(ctx context.Context, keyword string) ([]*subscription.Subscription, error)
	SweepExpired(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*subscription.Stats, error)
}

// HTTPMetrics instruments requests and serves the scrape endpoint
type HTTPMetrics interface {
	HTTPMiddleware() gin.HandlerFunc
	Handler() http.Handler
}

// ServerOptions represents options for creating the HTTP server. Use cases
// may be nil only in degraded mode, where the guard answers every API
// request before a handler runs.
type ServerOptions struct {
	Config              ServerConfig
	SubscriberUseCase   SubscriberUseCase
	NewspaperUseCase    NewspaperUseCase
	SubscriptionUseCase SubscriptionUseCase
	HealthChecker       ports.SystemHealthChecker
	Metrics             HTTPMetrics
	Degraded            bool
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	server := &HTTPServerAdapter{
		router:              gin.New(),
		config:              opts.Config,
		subscriberUseCase:   opts.SubscriberUseCase,
		newspaperUseCase:    opts.NewspaperUseCase,
		subscriptionUseCase: opts.SubscriptionUseCase,
		healthChecker:       opts.HealthChecker,
		metrics:             opts.Metrics,
		degraded:            opts.Degraded,
	}

	server.setupMiddleware()
	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Metrics == nil {
		return errors.NewValidationError("metrics is required")
	}
	if opts.Degraded {
		return nil
	}
	if opts.SubscriberUseCase == nil {
		return errors.NewValidationError("subscriber use case is required")
	}
	if opts.NewspaperUseCase == nil {
		return errors.NewValidationError("newspaper use case is required")
	}
	if opts.SubscriptionUseCase == nil {
		return errors.NewValidationError("subscription use case is required")
	}
	return nil
}

func (s *HTTPServerAdapter) setupMiddleware() {
	s.router.Use(
		recoveryMiddleware(),
		requestIDMiddleware(),
		corsMiddleware(s.config.CORSOrigin),
		s.metrics.HTTPMiddleware(),
	)
	if s.config.TracingServiceName != "" {
		s.router.Use(otelgin.Middleware(s.config.TracingServiceName))
	}
	if s.degraded {
		s.router.Use(degradedGuard())
	}

	s.router.NoRoute(s.notFound)
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)

		subscribers := api.Group("/subscribers")
		subscribers.GET("", s.listSubscribers)
		subscribers.GET("/stats", s.subscriberStats)
		subscribers.GET("/search/:keyword", s.searchSubscribers)
		subscribers.GET("/:id", s.getSubscriber)
		subscribers.POST("", s.createSubscriber)
		subscribers.PUT("/:id", s.updateSubscriber)
		subscribers.DELETE("/:id", s.deleteSubscriber)

		newspapers := api.Group("/newspapers")
		newspapers.GET("", s.listNewspapers)
		newspapers.GET("/stats", s.newspaperStats)
		newspapers.GET("/search/:keyword", s.searchNewspapers)
		newspapers.GET("/price-range/:min/:max", s.newspapersByPriceRange)
		newspapers.GET("/publisher/:publisher", s.newspapersByPublisher)
		newspapers.GET("/:id", s.getNewspaper)
		newspapers.POST("", s.createNewspaper)
		newspapers.PUT("/:id", s.updateNewspaper)
		newspapers.DELETE("/:id", s.deleteNewspaper)

		subscriptions := api.Group("/subscriptions")
		subscriptions.GET("", s.listSubscriptions)
		subscriptions.GET("/stats", s.subscriptionStats)
		subscriptions.GET("/search/:keyword", s.searchSubscriptions)
		subscriptions.GET("/subscriber/:id", s.subscriptionsBySubscriber)
		subscriptions.GET("/newspaper/:id", s.subscriptionsByNewspaper)
		subscriptions.GET("/status/:status", s.subscriptionsByStatus)
		subscriptions.GET("/expiring-soon", s.expiringSubscriptions)
		subscriptions.GET("/expiring-soon/:days", s.expiringSubscriptions)
		subscriptions.POST("/expire", s.expireSubscriptions)
		subscriptions.GET("/:id", s.getSubscription)
		subscriptions.POST("", s.createSubscription)
		subscriptions.PUT("/:id", s.updateSubscription)
		subscriptions.DELETE("/:id", s.deleteSubscription)
	}

	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
