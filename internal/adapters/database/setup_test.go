package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"newsdesk.app/internal/ports"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), GormConfig())
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedSubscriber(t *testing.T, repo ports.SubscriberRepository, name, email string) *ports.SubscriberData {
	sub := &ports.SubscriberData{
		Name:    name,
		Email:   email,
		Phone:   "555-0100",
		Address: "1 Main St",
	}
	require.NoError(t, repo.Save(context.Background(), sub))
	return sub
}

func seedNewspaper(t *testing.T, repo ports.NewspaperRepository, name, publisher string, price float64) *ports.NewspaperData {
	paper := &ports.NewspaperData{
		Name:      name,
		Publisher: publisher,
		Frequency: "daily",
		Price:     price,
	}
	require.NoError(t, repo.Save(context.Background(), paper))
	return paper
}
