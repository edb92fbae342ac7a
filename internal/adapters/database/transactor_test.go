package database

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"newsdesk.app/internal/ports"
)

func TestTransactor_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	tx := NewTransactorAdapter(db)
	repo := NewSubscriberRepositoryAdapter(db)
	ctx := context.Background()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, &ports.SubscriberData{Name: "Ann", Email: "ann@example.com", Phone: "1", Address: "x"})
	})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	tx := NewTransactorAdapter(db)
	repo := NewSubscriberRepositoryAdapter(db)
	ctx := context.Background()
	boom := stderrors.New("boom")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.Save(ctx, &ports.SubscriberData{Name: "Ann", Email: "ann@example.com", Phone: "1", Address: "x"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTransactor_NestedCallsJoinOuterTransaction(t *testing.T) {
	db := setupTestDB(t)
	tx := NewTransactorAdapter(db)
	repo := NewSubscriberRepositoryAdapter(db)
	ctx := context.Background()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return repo.Save(ctx, &ports.SubscriberData{Name: "Ann", Email: "ann@example.com", Phone: "1", Address: "x"})
		})
	})
	require.NoError(t, err)

	taken, err := repo.EmailTaken(ctx, "ann@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}
