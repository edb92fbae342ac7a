package subscription

import (
	"encoding/json"
	"strings"
	"time"

	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
	"newsdesk.app/pkg/validation"
)

const (
	// RecentWindow is the trailing period counted as "recent" in stats
	RecentWindow = 30 * 24 * time.Hour

	DefaultExpiringDays = 30
	MinExpiringDays     = 1
	MaxExpiringDays     = 365
)

// Subscription links a subscriber to a newspaper for a date range. The
// subscriber and newspaper fields are denormalised from the joined rows.
type Subscription struct {
	ID           uint      `json:"id"`
	SubscriberID uint      `json:"subscriber_id"`
	NewspaperID  uint      `json:"newspaper_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	SubscriberName  string  `json:"subscriber_name"`
	SubscriberEmail string  `json:"subscriber_email"`
	NewspaperName   string  `json:"newspaper_name"`
	Publisher       string  `json:"publisher"`
	Price           float64 `json:"price"`
}

// Status is the lifecycle state of a subscription. Active subscriptions
// become expired through the sweep or cancelled by an update; nothing
// leaves expired or cancelled on its own.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusExpired
	StatusCancelled
)

// String returns the string representation of status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusExpired || s == StatusCancelled
}

// StatusFromString converts string to Status enum
func StatusFromString(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "expired":
		return StatusExpired
	case "cancelled":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// ParseStatus converts s to a Status or returns a validation error
func ParseStatus(s string) (Status, error) {
	status := StatusFromString(s)
	if !status.IsValid() {
		return StatusUnknown, errors.NewValidationError("status must be one of active, expired, cancelled")
	}
	return status, nil
}

// MarshalJSON implements json.Marshaler interface
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = StatusFromString(str)
	return nil
}

// IsActive reports whether the subscription is currently running
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

// Stats summarises subscriptions by status and recency
type Stats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Expired int64 `json:"expired"`
	Recent  int64 `json:"recent"`
}

// CreateParams carries the fields of a new subscription. Dates are
// YYYY-MM-DD or RFC 3339. An empty status means active.
type CreateParams struct {
	SubscriberID uint
	NewspaperID  uint
	StartDate    string
	EndDate      string
	Status       string
}

// UpdateParams carries a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	SubscriberID *uint
	NewspaperID  *uint
	StartDate    *string
	EndDate      *string
	Status       *string
}

// IsEmpty reports whether no field was supplied
func (p UpdateParams) IsEmpty() bool {
	return p.SubscriberID == nil && p.NewspaperID == nil && p.StartDate == nil && p.EndDate == nil && p.Status == nil
}

func (p CreateParams) toSubscription() (*Subscription, error) {
	if p.SubscriberID == 0 {
		return nil, errors.NewValidationError("subscriber_id is required")
	}
	if p.NewspaperID == 0 {
		return nil, errors.NewValidationError("newspaper_id is required")
	}
	start, err := parseDate("start_date", p.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", p.EndDate)
	if err != nil {
		return nil, err
	}

	status := StatusActive
	if validation.IsNotEmpty(p.Status) {
		if status, err = ParseStatus(p.Status); err != nil {
			return nil, err
		}
	}

	sub := &Subscription{
		SubscriberID: p.SubscriberID,
		NewspaperID:  p.NewspaperID,
		StartDate:    start,
		EndDate:      end,
		Status:       status,
	}
	if err := sub.validateDates(); err != nil {
		return nil, err
	}
	return sub, nil
}

// apply merges supplied fields into sub
func (p UpdateParams) apply(sub *Subscription) error {
	if p.SubscriberID != nil {
		if *p.SubscriberID == 0 {
			return errors.NewValidationError("subscriber_id cannot be zero")
		}
		sub.SubscriberID = *p.SubscriberID
	}
	if p.NewspaperID != nil {
		if *p.NewspaperID == 0 {
			return errors.NewValidationError("newspaper_id cannot be zero")
		}
		sub.NewspaperID = *p.NewspaperID
	}
	if p.StartDate != nil {
		start, err := parseDate("start_date", *p.StartDate)
		if err != nil {
			return err
		}
		sub.StartDate = start
	}
	if p.EndDate != nil {
		end, err := parseDate("end_date", *p.EndDate)
		if err != nil {
			return err
		}
		sub.EndDate = end
	}
	if p.Status != nil {
		status, err := ParseStatus(*p.Status)
		if err != nil {
			return err
		}
		sub.Status = status
	}
	return sub.validateDates()
}

func (s *Subscription) validateDates() error {
	if s.EndDate.Before(s.StartDate) {
		return errors.NewValidationError("end_date cannot be before start_date")
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	if !validation.IsNotEmpty(value) {
		return time.Time{}, errors.NewValidationError(field + " is required")
	}
	t, ok := validation.ParseDate(value)
	if !ok {
		return time.Time{}, errors.NewValidationError(field + " must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func fromData(data *ports.SubscriptionData) *Subscription {
	return &Subscription{
		ID:              data.ID,
		SubscriberID:    data.SubscriberID,
		NewspaperID:     data.NewspaperID,
		StartDate:       validation.TruncateToDay(data.StartDate),
		EndDate:         validation.TruncateToDay(data.EndDate),
		Status:          StatusFromString(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		SubscriberName:  data.SubscriberName,
		SubscriberEmail: data.SubscriberEmail,
		NewspaperName:   data.NewspaperName,
		Publisher:       data.Publisher,
		Price:           data.Price,
	}
}

func fromDataList(list []*ports.SubscriptionData) []*Subscription {
	subs := make([]*Subscription, len(list))
	for i, data := range list {
		subs[i] = fromData(data)
	}
	return subs
}

func (s *Subscription) toData() *ports.SubscriptionData {
	return &ports.SubscriptionData{
		ID:           s.ID,
		SubscriberID: s.SubscriberID,
		NewspaperID:  s.NewspaperID,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Status:       s.Status.String(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
