package ports

import (
	"context"
	"time"
)

// SubscriberData represents subscriber data for persistence
type SubscriberData struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriberRepository defines the contract for subscriber data persistence
type SubscriberRepository interface {
	FindAll(ctx context.Context) ([]*SubscriberData, error)
	FindByID(ctx context.Context, id uint) (*SubscriberData, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	Save(ctx context.Context, sub *SubscriberData) error
	Update(ctx context.Context, sub *SubscriberData) error
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, keyword string) ([]*SubscriberData, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
