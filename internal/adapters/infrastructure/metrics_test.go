package infrastructure

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"newsdesk.app/internal/ports"
)

type fixedCacheMetrics struct {
	stats ports.CacheStats
}

func (f fixedCacheMetrics) GetStats() ports.CacheStats { return f.stats }
func (f fixedCacheMetrics) RecordHit()                 {}
func (f fixedCacheMetrics) RecordMiss()                {}

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewMetrics("newsdesk", nil)

	m.RecordCreated(ports.ResourceSubscriber)
	m.RecordCreated(ports.ResourceSubscriber)
	m.RecordUpdated(ports.ResourceNewspaper)
	m.RecordDeleted(ports.ResourceSubscription)
	m.RecordConflict(ports.ResourceSubscriber, "DuplicateEmail")
	m.RecordExpired(3)
	m.RecordExpired(0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ResourcesCreated.WithLabelValues("subscriber")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ResourcesUpdated.WithLabelValues("newspaper")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ResourcesDeleted.WithLabelValues("subscription")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Conflicts.WithLabelValues("subscriber", "DuplicateEmail")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.SubscriptionsExpired))
}

func TestMetrics_SweepJob(t *testing.T) {
	m := NewMetrics("newsdesk", nil)

	require.NoError(t, m.SweepJob("cron", func() error { return nil }))
	err := m.SweepJob("startup", func() error { return errors.New("boom") })
	assert.EqualError(t, err, "boom")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExpirySweepRuns.WithLabelValues("cron", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ExpirySweepRuns.WithLabelValues("startup", "error")))
}

func TestMetrics_HTTPMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics("newsdesk", fixedCacheMetrics{stats: ports.CacheStats{Hits: 4, Misses: 1}})

	router := gin.New()
	router.Use(m.HTTPMiddleware())
	router.GET("/api/subscribers/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/subscribers/9", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/subscribers/:id", "4xx")))
	assert.Zero(t, testutil.ToFloat64(m.HTTPRequestsInFlight))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "newsdesk_http_requests_total")
	assert.Contains(t, body, "newsdesk_stats_cache_hits 4")
	assert.Contains(t, body, "newsdesk_stats_cache_misses 1")
}
