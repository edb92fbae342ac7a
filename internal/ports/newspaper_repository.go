package ports

import (
	"context"
	"time"
)

// NewspaperData represents newspaper data for persistence
type NewspaperData struct {
	ID          uint
	Name        string
	Publisher   string
	Frequency   string
	Price       float64
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceAggregates holds AVG/MIN/MAX over newspaper prices. All zero for an empty table.
type PriceAggregates struct {
	Avg float64
	Min float64
	Max float64
}

// NewspaperRepository defines the contract for newspaper data persistence
type NewspaperRepository interface {
	FindAll(ctx context.Context) ([]*NewspaperData, error)
	FindByID(ctx context.Context, id uint) (*NewspaperData, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Save(ctx context.Context, paper *NewspaperData) error
	Update(ctx context.Context, paper *NewspaperData) error
	Delete(ctx context.Context, id uint) (bool, error)
	Search(ctx context.Context, keyword string) ([]*NewspaperData, error)
	FindByPriceRange(ctx context.Context, min, max float64) ([]*NewspaperData, error)
	FindByPublisher(ctx context.Context, publisher string) ([]*NewspaperData, error)
	Count(ctx context.Context) (int64, error)
	PriceAggregates(ctx context.Context) (PriceAggregates, error)
}
