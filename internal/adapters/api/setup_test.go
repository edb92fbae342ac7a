package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"newsdesk.app/internal/adapters/database"
	"newsdesk.app/internal/adapters/infrastructure"
	"newsdesk.app/internal/core/newspaper"
	"newsdesk.app/internal/core/subscriber"
	"newsdesk.app/internal/core/subscription"
	"newsdesk.app/internal/mocks"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	clock   *mocks.Clock
	metrics *infrastructure.Metrics
}

// envelope mirrors Response with the payload left undecoded
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Mode    string          `json:"mode"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	clock := mocks.NewClock(testNow)
	logger := mocks.NewQuietLogger(t)
	cache := mocks.NewMissingStatsCache(t)
	domainMetrics := mocks.NewQuietDomainMetrics(t)

	subscriberRepo := database.NewSubscriberRepositoryAdapter(db)
	newspaperRepo := database.NewNewspaperRepositoryAdapter(db)
	subscriptionRepo := database.NewSubscriptionRepositoryAdapter(db)
	transactor := database.NewTransactorAdapter(db)

	subscriberUseCase, err := subscriber.NewUseCase(subscriber.UseCaseDependencies{
		SubscriberRepo:   subscriberRepo,
		SubscriptionRepo: subscriptionRepo,
		Transactor:       transactor,
		Clock:            clock,
		Cache:            cache,
		Metrics:          domainMetrics,
		Logger:           logger,
	})
	require.NoError(t, err)

	newspaperUseCase, err := newspaper.NewUseCase(newspaper.UseCaseDependencies{
		NewspaperRepo:    newspaperRepo,
		SubscriptionRepo: subscriptionRepo,
		Transactor:       transactor,
		Clock:            clock,
		Cache:            cache,
		Metrics:          domainMetrics,
		Logger:           logger,
	})
	require.NoError(t, err)

	subscriptionUseCase, err := subscription.NewUseCase(subscription.UseCaseDependencies{
		SubscriptionRepo: subscriptionRepo,
		SubscriberRepo:   subscriberRepo,
		NewspaperRepo:    newspaperRepo,
		Transactor:       transactor,
		Clock:            clock,
		Cache:            cache,
		Metrics:          domainMetrics,
		Logger:           logger,
	})
	require.NoError(t, err)

	metrics := infrastructure.NewMetrics("newsdesk", nil)
	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:              ServerConfig{Port: 8001, CORSOrigin: "http://localhost:3000"},
		SubscriberUseCase:   subscriberUseCase,
		NewspaperUseCase:    newspaperUseCase,
		SubscriptionUseCase: subscriptionUseCase,
		HealthChecker: infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
			DatabaseChecker: infrastructure.NewDatabaseHealthChecker(db),
		}),
		Metrics: metrics,
	})
	require.NoError(t, err)

	return &testServer{router: server.GetRouter(), db: db, clock: clock, metrics: metrics}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest), "data: %s", string(env.Data))
}

// Payload shapes as seen by API clients
type subscriberJSON struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type newspaperJSON struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Publisher   string  `json:"publisher"`
	Frequency   string  `json:"frequency"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type subscriptionJSON struct {
	ID             uint   `json:"id"`
	SubscriberID   uint   `json:"subscriber_id"`
	NewspaperID    uint   `json:"newspaper_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
	SubscriberName string `json:"subscriber_name"`
	NewspaperName  string `json:"newspaper_name"`
	Publisher      string `json:"publisher"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func (ts *testServer) createSubscriber(t *testing.T, name, email string) subscriberJSON {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/subscribers", map[string]string{
		"name": name, "email": email, "phone": "555-0100", "address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub subscriberJSON
	decodeData(t, decodeEnvelope(t, w), &sub)
	return sub
}

func (ts *testServer) createNewspaper(t *testing.T, name, publisher string, price float64) newspaperJSON {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/newspapers", map[string]interface{}{
		"name": name, "publisher": publisher, "frequency": "daily", "price": price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var paper newspaperJSON
	decodeData(t, decodeEnvelope(t, w), &paper)
	return paper
}

func (ts *testServer) createSubscription(t *testing.T, subscriberID, newspaperID uint, start, end, status string) subscriptionJSON {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/subscriptions", map[string]interface{}{
		"subscriber_id": subscriberID, "newspaper_id": newspaperID,
		"start_date": start, "end_date": end, "status": status,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub subscriptionJSON
	decodeData(t, decodeEnvelope(t, w), &sub)
	return sub
}
