package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"newsdesk.app/internal/config"
)

// Open connects to PostgreSQL and verifies the connection with a ping
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectTimeout)*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// GormConfig returns the GORM settings shared by production and tests.
// Timestamps are stored in UTC at the microsecond precision of timestamptz,
// and driver errors are translated so that
// unique violations surface as gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// caseInsensitiveIndexes keep emails and newspaper names unique regardless
// of letter case. Both PostgreSQL and SQLite accept expression indexes.
var caseInsensitiveIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_subscribers_email_lower ON subscribers (LOWER(email))",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_newspapers_name_lower ON newspapers (LOWER(name))",
}

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range caseInsensitiveIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
