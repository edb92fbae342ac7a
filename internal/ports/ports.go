package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Persistence
	SubscriberRepository   SubscriberRepository
	NewspaperRepository    NewspaperRepository
	SubscriptionRepository SubscriptionRepository
	Transactor             Transactor

	// Cache
	CacheProvider CacheProvider
	StatsCache    StatsCache
	CacheMetrics  CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Clock          Clock
	Metrics        DomainMetrics

	// Database is nil when the application runs in degraded mode
	Database interface{}
}

// Connected reports whether a database handle is available
func (p *ApplicationPorts) Connected() bool {
	return p != nil && p.Database != nil
}
