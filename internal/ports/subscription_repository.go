package ports

import (
	"context"
	"time"
)

// SubscriptionData represents subscription data for persistence. The
// Subscriber*/Newspaper*/Publisher/Price fields are filled by joined reads
// only and are never written.
type SubscriptionData struct {
	ID           uint
	SubscriberID uint
	NewspaperID  uint
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SubscriberName  string
	SubscriberEmail string
	NewspaperName   string
	Publisher       string
	Price           float64
}

// SubscriptionRepository defines the contract for subscription data persistence
type SubscriptionRepository interface {
	FindAll(ctx context.Context) ([]*SubscriptionData, error)
	FindByID(ctx context.Context, id uint) (*SubscriptionData, error)
	FindBySubscriberID(ctx context.Context, subscriberID uint) ([]*SubscriptionData, error)
	FindByNewspaperID(ctx context.Context, newspaperID uint) ([]*SubscriptionData, error)
	FindByStatus(ctx context.Context, status string) ([]*SubscriptionData, error)
	FindEndingBetween(ctx context.Context, status string, from, to time.Time) ([]*SubscriptionData, error)
	Search(ctx context.Context, keyword string) ([]*SubscriptionData, error)

	HasActive(ctx context.Context, subscriberID, newspaperID, excludeID uint) (bool, error)
	CountBySubscriberID(ctx context.Context, subscriberID uint) (int64, error)
	CountByNewspaperID(ctx context.Context, newspaperID uint) (int64, error)

	Save(ctx context.Context, sub *SubscriptionData) error
	Update(ctx context.Context, sub *SubscriptionData) error
	Delete(ctx context.Context, id uint) (bool, error)

	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	// MarkExpired moves every row in fromStatus whose end date is before
	// cutoff to toStatus and stamps updated_at with now.
	MarkExpired(ctx context.Context, fromStatus, toStatus string, cutoff, now time.Time) (int64, error)
}

// Transactor runs fn inside a single database transaction. Repositories
// called with the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
