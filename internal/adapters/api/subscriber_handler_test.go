package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberHandler_CreateAndGet(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createSubscriber(t, "Alice", "alice@example.com")
	assert.NotZero(t, created.ID)

	w := ts.do(t, http.MethodGet, "/api/subscribers/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Subscriber retrieved successfully", env.Message)
	assert.Equal(t, modeDatabase, env.Mode)

	var got subscriberJSON
	decodeData(t, env, &got)
	assert.Equal(t, created, got)
}

func TestSubscriberHandler_Create_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		body    interface{}
		message string
	}{
		{"missing_fields", map[string]string{"name": "Alice"}, "email is required"},
		{"bad_email", map[string]string{"name": "Alice", "email": "nope", "phone": "1", "address": "x"}, "email must be a valid email address"},
		{"blank_name", map[string]string{"name": "   ", "email": "a@example.com", "phone": "1", "address": "x"}, "name is required"},
		{"malformed_json", "{", "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/subscribers", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			env := decodeEnvelope(t, w)
			assert.False(t, env.Success)
			assert.Contains(t, env.Message, tt.message)
			assert.Equal(t, "ValidationError", env.Error)
		})
	}
}

func TestSubscriberHandler_Create_DuplicateEmailLeavesTableUnchanged(t *testing.T) {
	ts := newTestServer(t)
	ts.createSubscriber(t, "Alice", "alice@example.com")

	w := ts.do(t, http.MethodPost, "/api/subscribers", map[string]string{
		"name": "Alice Again", "email": "alice@example.com", "phone": "1", "address": "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DuplicateEmail", decodeEnvelope(t, w).Error)

	w = ts.do(t, http.MethodGet, "/api/subscribers", nil)
	var list []subscriberJSON
	decodeData(t, decodeEnvelope(t, w), &list)
	assert.Len(t, list, 1)
}

func TestSubscriberHandler_EmailIgnoresCase(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createSubscriber(t, "Alice", "Alice@Example.COM")
	assert.Equal(t, "alice@example.com", created.Email)

	w := ts.do(t, http.MethodPost, "/api/subscribers", map[string]string{
		"name": "Alice Again", "email": "ALICE@example.com", "phone": "1", "address": "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DuplicateEmail", decodeEnvelope(t, w).Error)

	ts.createSubscriber(t, "Bob", "bob@example.com")
	w = ts.do(t, http.MethodPut, "/api/subscribers/2", map[string]string{"email": "Alice@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EmailConflict", decodeEnvelope(t, w).Error)

	w = ts.do(t, http.MethodPut, "/api/subscribers/1", map[string]string{"email": "ALICE@EXAMPLE.COM"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var same subscriberJSON
	decodeData(t, decodeEnvelope(t, w), &same)
	assert.Equal(t, "alice@example.com", same.Email)
}

func TestSubscriberHandler_Get_Errors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/subscribers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/subscribers/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "NotFound", env.Error)
	assert.Empty(t, env.Mode)
}

func TestSubscriberHandler_UpdateRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSubscriber(t, "Alice", "alice@example.com")
	assert.Equal(t, "2024-06-15T10:30:00Z", created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	later := testNow.Add(time.Hour)
	ts.clock.Set(later)

	w := ts.do(t, http.MethodPut, "/api/subscribers/1", map[string]string{"phone": "555-9999"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated subscriberJSON
	decodeData(t, decodeEnvelope(t, w), &updated)

	w = ts.do(t, http.MethodGet, "/api/subscribers/1", nil)
	var got subscriberJSON
	decodeData(t, decodeEnvelope(t, w), &got)

	expected := created
	expected.Phone = "555-9999"
	expected.UpdatedAt = later.Format(time.RFC3339Nano)
	assert.Equal(t, expected, updated)
	assert.Equal(t, expected, got)
}

func TestSubscriberHandler_Update_EmptyBodyReturnsCurrent(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createSubscriber(t, "Alice", "alice@example.com")

	for _, body := range []interface{}{nil, map[string]string{}} {
		w := ts.do(t, http.MethodPut, "/api/subscribers/1", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got subscriberJSON
		decodeData(t, decodeEnvelope(t, w), &got)
		assert.Equal(t, created, got)
	}
}

func TestSubscriberHandler_Update_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.createSubscriber(t, "Alice", "alice@example.com")
	ts.createSubscriber(t, "Bob", "bob@example.com")

	w := ts.do(t, http.MethodPut, "/api/subscribers/2", map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EmailConflict", decodeEnvelope(t, w).Error)

	w = ts.do(t, http.MethodPut, "/api/subscribers/2", map[string]string{"email": "broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/subscribers/99", map[string]string{"name": "Nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriberHandler_Delete(t *testing.T) {
	ts := newTestServer(t)
	ts.createSubscriber(t, "Alice", "alice@example.com")

	w := ts.do(t, http.MethodDelete, "/api/subscribers/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w).Success)

	w = ts.do(t, http.MethodDelete, "/api/subscribers/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriberHandler_Delete_WithSubscriptionsConflicts(t *testing.T) {
	ts := newTestServer(t)
	sub := ts.createSubscriber(t, "Alice", "alice@example.com")
	paper := ts.createNewspaper(t, "Daily Planet", "Planet Media", 2.5)
	ts.createSubscription(t, sub.ID, paper.ID, "2024-06-01", "2024-12-01", "")

	w := ts.do(t, http.MethodDelete, "/api/subscribers/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HasDependentSubscriptions", decodeEnvelope(t, w).Error)
}

func TestSubscriberHandler_SearchAndStats(t *testing.T) {
	ts := newTestServer(t)
	ts.createSubscriber(t, "Alice Smith", "alice@example.com")
	ts.createSubscriber(t, "Bob Jones", "bob@example.com")

	w := ts.do(t, http.MethodGet, "/api/subscribers/search/SMITH", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []subscriberJSON
	decodeData(t, decodeEnvelope(t, w), &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Alice Smith", found[0].Name)

	w = ts.do(t, http.MethodGet, "/api/subscribers/search/%20", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/subscribers/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Total  int64 `json:"total"`
		Recent int64 `json:"recent"`
	}
	decodeData(t, decodeEnvelope(t, w), &stats)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Recent)
}

func TestSubscriberHandler_ListEmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/subscribers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, w).Data))
}
