package database

import (
	"time"
)

// SubscriberModel represents the database model for subscribers
type SubscriberModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Phone     string `gorm:"size:20;not null"`
	Address   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SubscriberModel) TableName() string {
	return "subscribers"
}

// NewspaperModel represents the database model for newspapers
type NewspaperModel struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;uniqueIndex"`
	Publisher   string  `gorm:"size:100;not null;index"`
	Frequency   string  `gorm:"size:20;not null"`
	Price       float64 `gorm:"type:decimal(10,2);not null;index"`
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (NewspaperModel) TableName() string {
	return "newspapers"
}

// SubscriptionModel represents the database model for subscriptions.
// At most one active row may exist per (subscriber, newspaper) pair.
type SubscriptionModel struct {
	ID           uint      `gorm:"primaryKey"`
	SubscriberID uint      `gorm:"not null;index;uniqueIndex:idx_active_subscription,where:status = 'active'"`
	NewspaperID  uint      `gorm:"not null;index;uniqueIndex:idx_active_subscription,where:status = 'active'"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null;index"`
	Status       string    `gorm:"size:20;not null;default:active;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Subscriber *SubscriberModel `gorm:"foreignKey:SubscriberID;constraint:OnDelete:RESTRICT"`
	Newspaper  *NewspaperModel  `gorm:"foreignKey:NewspaperID;constraint:OnDelete:RESTRICT"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// Models lists every model in migration order
func Models() []interface{} {
	return []interface{}{
		&SubscriberModel{},
		&NewspaperModel{},
		&SubscriptionModel{},
	}
}
