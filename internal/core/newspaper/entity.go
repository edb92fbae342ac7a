package newspaper

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
	"newsdesk.app/pkg/validation"
)

// Newspaper is a publication that can be subscribed to
type Newspaper struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Publisher   string    `json:"publisher"`
	Frequency   Frequency `json:"frequency"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Frequency represents how often a newspaper is published
type Frequency int

const (
	FrequencyUnknown Frequency = iota
	FrequencyDaily
	FrequencyWeekly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencyYearly
)

// String returns the string representation of frequency
func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyQuarterly:
		return "quarterly"
	case FrequencyYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// IsValid checks if the frequency value is valid
func (f Frequency) IsValid() bool {
	return f >= FrequencyDaily && f <= FrequencyYearly
}

// FrequencyFromString converts string to Frequency enum
func FrequencyFromString(s string) Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return FrequencyDaily
	case "weekly":
		return FrequencyWeekly
	case "monthly":
		return FrequencyMonthly
	case "quarterly":
		return FrequencyQuarterly
	case "yearly":
		return FrequencyYearly
	default:
		return FrequencyUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (f Frequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON implements json.Unmarshaler interface
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = FrequencyFromString(s)
	return nil
}

// Stats summarises newspaper count and pricing
type Stats struct {
	Total    int64   `json:"total"`
	AvgPrice float64 `json:"avgPrice"`
	MaxPrice float64 `json:"maxPrice"`
	MinPrice float64 `json:"minPrice"`
}

// CreateParams carries the fields of a new newspaper
type CreateParams struct {
	Name        string
	Publisher   string
	Frequency   string
	Price       *float64
	Description *string
}

// UpdateParams carries a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	Name        *string
	Publisher   *string
	Frequency   *string
	Price       *float64
	Description *string
}

// IsEmpty reports whether no field was supplied
func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Publisher == nil && p.Frequency == nil && p.Price == nil && p.Description == nil
}

func (p *CreateParams) toNewspaper() (*Newspaper, error) {
	name, ok := validation.TrimAndValidate(p.Name)
	if !ok {
		return nil, errors.NewValidationError("name is required")
	}
	publisher, ok := validation.TrimAndValidate(p.Publisher)
	if !ok {
		return nil, errors.NewValidationError("publisher is required")
	}
	if !validation.IsNotEmpty(p.Frequency) {
		return nil, errors.NewValidationError("frequency is required")
	}
	freq, err := parseFrequency(p.Frequency)
	if err != nil {
		return nil, err
	}
	if p.Price == nil {
		return nil, errors.NewValidationError("price is required")
	}
	if err := validatePrice(*p.Price); err != nil {
		return nil, err
	}

	return &Newspaper{
		Name:        name,
		Publisher:   publisher,
		Frequency:   freq,
		Price:       roundPrice(*p.Price),
		Description: normalizeDescription(p.Description),
	}, nil
}

func (p UpdateParams) apply(paper *Newspaper) error {
	if p.Name != nil {
		name, ok := validation.TrimAndValidate(*p.Name)
		if !ok {
			return errors.NewValidationError("name cannot be empty")
		}
		paper.Name = name
	}
	if p.Publisher != nil {
		publisher, ok := validation.TrimAndValidate(*p.Publisher)
		if !ok {
			return errors.NewValidationError("publisher cannot be empty")
		}
		paper.Publisher = publisher
	}
	if p.Frequency != nil {
		freq, err := parseFrequency(*p.Frequency)
		if err != nil {
			return err
		}
		paper.Frequency = freq
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return err
		}
		paper.Price = roundPrice(*p.Price)
	}
	if p.Description != nil {
		paper.Description = normalizeDescription(p.Description)
	}
	return nil
}

func parseFrequency(s string) (Frequency, error) {
	freq := FrequencyFromString(s)
	if !freq.IsValid() {
		return FrequencyUnknown, errors.NewValidationError("frequency must be one of daily, weekly, monthly, quarterly, yearly")
	}
	return freq, nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.NewValidationError("price must be a number")
	}
	if price < 0 {
		return errors.NewValidationError("price cannot be negative")
	}
	return nil
}

// normalizeDescription maps a blank description to NULL
func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// roundPrice rounds to cents, the precision of the price column
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

func fromData(data *ports.NewspaperData) *Newspaper {
	return &Newspaper{
		ID:          data.ID,
		Name:        data.Name,
		Publisher:   data.Publisher,
		Frequency:   FrequencyFromString(data.Frequency),
		Price:       data.Price,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromDataList(list []*ports.NewspaperData) []*Newspaper {
	papers := make([]*Newspaper, len(list))
	for i, data := range list {
		papers[i] = fromData(data)
	}
	return papers
}

func (n *Newspaper) toData() *ports.NewspaperData {
	return &ports.NewspaperData{
		ID:          n.ID,
		Name:        n.Name,
		Publisher:   n.Publisher,
		Frequency:   n.Frequency.String(),
		Price:       n.Price,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
