package subscriber

import (
	"strings"
	"time"

	"newsdesk.app/internal/ports"
	"newsdesk.app/pkg/errors"
	"newsdesk.app/pkg/validation"
)

// RecentWindow is the trailing period counted as "recent" in stats
const RecentWindow = 30 * 24 * time.Hour

// Subscriber is a person who may hold subscriptions
type Subscriber struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats summarises the subscriber table
type Stats struct {
	Total  int64 `json:"total"`
	Recent int64 `json:"recent"`
}

// CreateParams carries the fields of a new subscriber
type CreateParams struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// UpdateParams carries a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// IsEmpty reports whether no field was supplied
func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil
}

func (p *CreateParams) normalize() error {
	fields := []struct {
		label string
		value *string
	}{
		{"name", &p.Name},
		{"email", &p.Email},
		{"phone", &p.Phone},
		{"address", &p.Address},
	}
	for _, f := range fields {
		trimmed, ok := validation.TrimAndValidate(*f.value)
		if !ok {
			return errors.NewValidationError(f.label + " is required")
		}
		*f.value = trimmed
	}

	p.Email = normalizeEmail(p.Email)
	if !validation.IsValidEmail(p.Email) {
		return errors.NewValidationError("invalid email format")
	}
	return nil
}

// apply merges supplied fields into sub, trimming and validating them
func (p UpdateParams) apply(sub *Subscriber) error {
	set := func(label string, src *string, dst *string) error {
		if src == nil {
			return nil
		}
		trimmed, ok := validation.TrimAndValidate(*src)
		if !ok {
			return errors.NewValidationError(label + " cannot be empty")
		}
		*dst = trimmed
		return nil
	}

	if err := set("name", p.Name, &sub.Name); err != nil {
		return err
	}
	if err := set("email", p.Email, &sub.Email); err != nil {
		return err
	}
	if p.Email != nil {
		sub.Email = normalizeEmail(sub.Email)
		if !validation.IsValidEmail(sub.Email) {
			return errors.NewValidationError("invalid email format")
		}
	}
	if err := set("phone", p.Phone, &sub.Phone); err != nil {
		return err
	}
	return set("address", p.Address, &sub.Address)
}

func fromData(data *ports.SubscriberData) *Subscriber {
	return &Subscriber{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromDataList(list []*ports.SubscriberData) []*Subscriber {
	subscribers := make([]*Subscriber, len(list))
	for i, data := range list {
		subscribers[i] = fromData(data)
	}
	return subscribers
}

func (s *Subscriber) toData() *ports.SubscriberData {
	return &ports.SubscriberData{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// normalizeEmail lowercases an address so that uniqueness ignores case
func normalizeEmail(email string) string {
	return strings.ToLower(email)
}

// normalizeKeyword trims a search keyword and rejects blanks
func normalizeKeyword(keyword string) (string, error) {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return "", errors.NewValidationError("search keyword is required")
	}
	return trimmed, nil
}
