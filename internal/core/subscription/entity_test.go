package subscription

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"newsdesk.app/pkg/errors"
)

func TestStatusFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
	}{
		{"active", StatusActive},
		{"EXPIRED", StatusExpired},
		{" cancelled", StatusCancelled},
		{"paused", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFromString(tt.input))
		})
	}
}

func TestParseStatus_RejectsUnknown(t *testing.T) {
	_, err := ParseStatus("paused")
	assert.True(t, errors.IsValidationError(err))

	status, err := ParseStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)
}

func TestStatus_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Status Status `json:"status"`
	}{StatusExpired})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"expired"}`, string(data))
}

func TestCreateParams_ToSubscription(t *testing.T) {
	t.Run("defaults to active", func(t *testing.T) {
		sub, err := CreateParams{SubscriberID: 1, NewspaperID: 2, StartDate: "2024-01-01", EndDate: "2024-12-31"}.toSubscription()
		require.NoError(t, err)
		assert.Equal(t, StatusActive, sub.Status)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), sub.StartDate)
	})

	t.Run("accepts RFC 3339", func(t *testing.T) {
		sub, err := CreateParams{SubscriberID: 1, NewspaperID: 2, StartDate: "2024-01-01T15:04:05Z", EndDate: "2024-01-01", Status: "cancelled"}.toSubscription()
		require.NoError(t, err)
		assert.Equal(t, sub.StartDate, sub.EndDate)
		assert.Equal(t, StatusCancelled, sub.Status)
	})

	tests := []struct {
		name    string
		params  CreateParams
		wantErr string
	}{
		{"missing subscriber", CreateParams{NewspaperID: 2, StartDate: "2024-01-01", EndDate: "2024-02-01"}, "subscriber_id is required"},
		{"missing newspaper", CreateParams{SubscriberID: 1, StartDate: "2024-01-01", EndDate: "2024-02-01"}, "newspaper_id is required"},
		{"missing start", CreateParams{SubscriberID: 1, NewspaperID: 2, EndDate: "2024-02-01"}, "start_date is required"},
		{"bad end", CreateParams{SubscriberID: 1, NewspaperID: 2, StartDate: "2024-01-01", EndDate: "02/01/2024"}, "end_date must be a date"},
		{"inverted dates", CreateParams{SubscriberID: 1, NewspaperID: 2, StartDate: "2024-03-01", EndDate: "2024-02-01"}, "end_date cannot be before start_date"},
		{"bad status", CreateParams{SubscriberID: 1, NewspaperID: 2, StartDate: "2024-01-01", EndDate: "2024-02-01", Status: "paused"}, "status must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.toSubscription()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateParams_Apply(t *testing.T) {
	base := func() *Subscription {
		return &Subscription{
			SubscriberID: 1,
			NewspaperID:  2,
			StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:       StatusActive,
		}
	}

	early := "2023-12-01"
	status := "cancelled"
	sub := base()
	require.NoError(t, UpdateParams{EndDate: nil, StartDate: &early, Status: &status}.apply(sub))
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), sub.StartDate)
	assert.Equal(t, StatusCancelled, sub.Status)

	late := "2024-07-01"
	err := UpdateParams{StartDate: &late}.apply(base())
	assert.True(t, errors.IsValidationError(err))

	var zero uint
	err = UpdateParams{SubscriberID: &zero}.apply(base())
	assert.True(t, errors.IsValidationError(err))
}
