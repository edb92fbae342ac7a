package database

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"newsdesk.app/internal/ports"
)

type txKey struct{}

// TransactorAdapter implements the Transactor port using GORM transactions
type TransactorAdapter struct {
	db *gorm.DB
}

// NewTransactorAdapter creates a new transactor
func NewTransactorAdapter(db *gorm.DB) ports.Transactor {
	return &TransactorAdapter{db: db}
}

// WithinTransaction runs fn in a transaction. A context that already
// carries a transaction is reused.
func (t *TransactorAdapter) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db bound to ctx
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// stampOrNow returns ts, or the database clock when ts is unset
func stampOrNow(db *gorm.DB, ts time.Time) time.Time {
	if ts.IsZero() {
		return db.NowFunc()
	}
	return ts
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches keyword anywhere in a column. Wildcards inside the
// keyword are escaped so they match literally.
func likePattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// containsAny builds a case-insensitive LIKE over columns, one placeholder
// per column, for use with likePattern
func containsAny(columns ...string) string {
	clauses := make([]string, len(columns))
	for i, column := range columns {
		clauses[i] = "LOWER(" + column + `) LIKE LOWER(?) ESCAPE '\'`
	}
	return strings.Join(clauses, " OR ")
}
