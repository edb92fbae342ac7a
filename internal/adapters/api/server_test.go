package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"newsdesk.app/internal/adapters/infrastructure"
)

func newDegradedServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config: ServerConfig{Port: 8001, CORSOrigin: "*"},
		HealthChecker: infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
			DatabaseChecker: infrastructure.NewDatabaseHealthChecker(nil),
		}),
		Metrics:  infrastructure.NewMetrics("newsdesk", nil),
		Degraded: true,
	})
	require.NoError(t, err)
	return &testServer{router: server.GetRouter()}
}

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthResponse {
	t.Helper()

	var resp HealthResponse
	decodeData(t, envelope{Data: w.Body.Bytes()}, &resp)
	return resp
}

func TestServerOptions_Validate(t *testing.T) {
	metrics := infrastructure.NewMetrics("newsdesk", nil)

	tests := []struct {
		name    string
		opts    ServerOptions
		wantErr string
	}{
		{"missing_metrics", ServerOptions{Degraded: true}, "metrics is required"},
		{"missing_use_cases", ServerOptions{Metrics: metrics}, "subscriber use case is required"},
		{"degraded_without_use_cases", ServerOptions{Metrics: metrics, Degraded: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := NewHTTPServerAdapter(ServerOptions{})
	assert.Error(t, err)
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeHealth(t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Server is running", resp.Message)
	assert.Equal(t, modeDatabase, resp.Mode)
	assert.True(t, resp.DBConnected)
	assert.Equal(t, "healthy", resp.Components["database"].Status)
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/magazines", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
	assert.Equal(t, codeNotFound, env.Error)
}

func TestServer_PanicRecovery(t *testing.T) {
	ts := newTestServer(t)
	ts.router.GET("/api/explode", func(c *gin.Context) { panic("kaboom") })

	w := ts.do(t, http.MethodGet, "/api/explode", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, codeInternal, env.Error)
	assert.Equal(t, internalErrorMessage, env.Message)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestServer_RequestID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestServer_CORS(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/subscribers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)

	req = httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)
	ts.createSubscriber(t, "Alice", "alice@example.com")

	w := ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "newsdesk_http_requests_total")
	assert.Contains(t, body, `endpoint="/api/subscribers"`)
}

func TestServer_DegradedMode(t *testing.T) {
	ts := newDegradedServer(t)

	t.Run("reads_return_empty", func(t *testing.T) {
		tests := []struct {
			path string
			data string
		}{
			{"/api/subscribers", `[]`},
			{"/api/subscriptions/expiring-soon/7", `[]`},
			{"/api/subscriptions/subscriber/4", `[]`},
			{"/api/newspapers/search/daily", `[]`},
			{"/api/newspapers/1", `{}`},
			{"/api/subscribers/stats", `{}`},
			{"/api/subscriptions/stats", `{}`},
		}

		for _, tt := range tests {
			w := ts.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code, tt.path)

			env := decodeEnvelope(t, w)
			assert.True(t, env.Success)
			assert.Equal(t, modeDegraded, env.Mode)
			assert.JSONEq(t, tt.data, string(env.Data), tt.path)
		}
	})

	t.Run("writes_are_unavailable", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/subscribers", map[string]string{"name": "Alice"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, codeNotConnected, env.Error)
		assert.Equal(t, modeDegraded, env.Mode)

		w = ts.do(t, http.MethodDelete, "/api/subscriptions/3", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("health_reports_degraded", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeHealth(t, w)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, modeDegraded, resp.Mode)
		assert.False(t, resp.DBConnected)
		assert.Equal(t, "unhealthy", resp.Components["database"].Status)
	})

	t.Run("unknown_routes_still_404", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/magazines", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
