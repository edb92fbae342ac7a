package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// StatsCache is a mock implementation of ports.StatsCache
type StatsCache struct {
	mock.Mock
}

// NewStatsCache creates a StatsCache mock whose expectations are asserted on cleanup
func NewStatsCache(t *testing.T) *StatsCache {
	m := &StatsCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewMissingStatsCache creates a StatsCache mock that always misses and
// accepts stores and invalidations
func NewMissingStatsCache(t *testing.T) *StatsCache {
	m := NewStatsCache(t)
	m.On("Load", mock.Anything, mock.Anything, mock.Anything).Return("", false).Maybe()
	m.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("Invalidate", mock.Anything, mock.Anything).Maybe()
	return m
}

func (m *StatsCache) Load(ctx context.Context, key string, dest interface{}) (string, bool) {
	args := m.Called(ctx, key, dest)
	return args.String(0), args.Bool(1)
}

func (m *StatsCache) Store(ctx context.Context, key, generation string, value interface{}) {
	m.Called(ctx, key, generation, value)
}

func (m *StatsCache) Invalidate(ctx context.Context, keys ...string) {
	m.Called(ctx, keys)
}
