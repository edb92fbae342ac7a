package newspaper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Frequency
	}{
		{"daily", FrequencyDaily},
		{"Weekly", FrequencyWeekly},
		{" monthly ", FrequencyMonthly},
		{"quarterly", FrequencyQuarterly},
		{"yearly", FrequencyYearly},
		{"hourly", FrequencyUnknown},
		{"", FrequencyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			freq := FrequencyFromString(tt.input)
			assert.Equal(t, tt.expected, freq)
			assert.Equal(t, tt.expected != FrequencyUnknown, freq.IsValid())
		})
	}
}

func TestNewspaper_JSON(t *testing.T) {
	desc := "Evening news"
	paper := Newspaper{ID: 3, Name: "Herald", Publisher: "City", Frequency: FrequencyWeekly, Price: 1.5, Description: &desc}

	data, err := json.Marshal(paper)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "weekly", out["frequency"])
	assert.Equal(t, "Evening news", out["description"])
	assert.Contains(t, out, "created_at")
}

func TestCreateParams_Validation(t *testing.T) {
	price := 2.0
	negative := -1.0

	tests := []struct {
		name    string
		params  CreateParams
		wantErr string
	}{
		{"missing name", CreateParams{Publisher: "P", Frequency: "daily", Price: &price}, "name is required"},
		{"missing publisher", CreateParams{Name: "N", Frequency: "daily", Price: &price}, "publisher is required"},
		{"missing frequency", CreateParams{Name: "N", Publisher: "P", Price: &price}, "frequency is required"},
		{"unknown frequency", CreateParams{Name: "N", Publisher: "P", Frequency: "hourly", Price: &price}, "frequency must be one of"},
		{"missing price", CreateParams{Name: "N", Publisher: "P", Frequency: "daily"}, "price is required"},
		{"negative price", CreateParams{Name: "N", Publisher: "P", Frequency: "daily", Price: &negative}, "price cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.toNewspaper()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	blank := "   "
	text := " Sports "

	assert.Nil(t, normalizeDescription(nil))
	assert.Nil(t, normalizeDescription(&blank))
	require.NotNil(t, normalizeDescription(&text))
	assert.Equal(t, "Sports", *normalizeDescription(&text))
}
