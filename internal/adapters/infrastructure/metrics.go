package infrastructure

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"newsdesk.app/internal/ports"
)

const statusClassDivisor = 100

// Metrics holds the Prometheus collectors of the service. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// RED for HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPRequestDuration  *prometheus.HistogramVec

	// Business
	ResourcesCreated      *prometheus.CounterVec
	ResourcesUpdated      *prometheus.CounterVec
	ResourcesDeleted      *prometheus.CounterVec
	Conflicts             *prometheus.CounterVec
	SubscriptionsExpired  prometheus.Counter
	ExpirySweepRuns       *prometheus.CounterVec
	ExpirySweepDuration   prometheus.Histogram
	ServiceStartTimestamp prometheus.Gauge
}

// NewMetrics creates and registers all metrics under namespace. cacheMetrics
// may be nil; when set its counters are exported as gauges.
func NewMetrics(namespace string, cacheMetrics ports.CacheMetrics) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests total",
			},
			[]string{"method", "endpoint", "status_class"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "In-flight HTTP requests",
			},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		ResourcesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resources_created_total",
				Help:      "Records created, by resource",
			},
			[]string{"resource"},
		),
		ResourcesUpdated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resources_updated_total",
				Help:      "Records updated, by resource",
			},
			[]string{"resource"},
		),
		ResourcesDeleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resources_deleted_total",
				Help:      "Records deleted, by resource",
			},
			[]string{"resource"},
		),
		Conflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conflicts_total",
				Help:      "Writes rejected by a domain rule",
			},
			[]string{"resource", "code"},
		),
		SubscriptionsExpired: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscriptions_expired_total",
				Help:      "Subscriptions moved to expired by the sweep",
			},
		),
		ExpirySweepRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "expiry_sweep_runs_total",
				Help:      "Expiry sweep executions",
			},
			[]string{"trigger", "result"},
		),
		ExpirySweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "expiry_sweep_duration_seconds",
				Help:      "Duration of expiry sweeps",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ServiceStartTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "service_start_timestamp_seconds",
				Help:      "Unix time the service started",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestsInFlight,
		m.HTTPRequestDuration,
		m.ResourcesCreated,
		m.ResourcesUpdated,
		m.ResourcesDeleted,
		m.Conflicts,
		m.SubscriptionsExpired,
		m.ExpirySweepRuns,
		m.ExpirySweepDuration,
		m.ServiceStartTimestamp,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cacheMetrics != nil {
		registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stats_cache_hits",
				Help:      "Stats cache hits since start",
			}, func() float64 { return float64(cacheMetrics.GetStats().Hits) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stats_cache_misses",
				Help:      "Stats cache misses since start",
			}, func() float64 { return float64(cacheMetrics.GetStats().Misses) }),
		)
	}

	m.ServiceStartTimestamp.SetToCurrentTime()
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// HTTPMiddleware instruments gin handlers for RED metrics. Unmatched routes
// are grouped under a single endpoint label.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		c.Next()
		m.HTTPRequestsInFlight.Dec()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		statusClass := fmt.Sprintf("%dxx", c.Writer.Status()/statusClassDivisor)

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusClass).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordCreated(resource string) {
	m.ResourcesCreated.WithLabelValues(resource).Inc()
}

func (m *Metrics) RecordUpdated(resource string) {
	m.ResourcesUpdated.WithLabelValues(resource).Inc()
}

func (m *Metrics) RecordDeleted(resource string) {
	m.ResourcesDeleted.WithLabelValues(resource).Inc()
}

func (m *Metrics) RecordConflict(resource, code string) {
	m.Conflicts.WithLabelValues(resource, code).Inc()
}

func (m *Metrics) RecordExpired(count int64) {
	if count > 0 {
		m.SubscriptionsExpired.Add(float64(count))
	}
}

// SweepJob runs job and records its duration and outcome under trigger
func (m *Metrics) SweepJob(trigger string, job func() error) error {
	start := time.Now()
	err := job()
	m.ExpirySweepDuration.Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ExpirySweepRuns.WithLabelValues(trigger, result).Inc()
	return err
}
