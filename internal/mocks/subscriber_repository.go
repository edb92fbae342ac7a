package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"newsdesk.app/internal/ports"
)

// SubscriberRepository is a mock implementation of ports.SubscriberRepository
type SubscriberRepository struct {
	mock.Mock
}

// NewSubscriberRepository creates a SubscriberRepository mock whose expectations are asserted on cleanup
func NewSubscriberRepository(t *testing.T) *SubscriberRepository {
	m := &SubscriberRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SubscriberRepository) FindAll(ctx context.Context) ([]*ports.SubscriberData, error) {
	args := m.Called(ctx)
	subs, _ := args.Get(0).([]*ports.SubscriberData)
	return subs, args.Error(1)
}

func (m *SubscriberRepository) FindByID(ctx context.Context, id uint) (*ports.SubscriberData, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(*ports.SubscriberData)
	return sub, args.Error(1)
}

func (m *SubscriberRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *SubscriberRepository) Save(ctx context.Context, sub *ports.SubscriberData) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *SubscriberRepository) Update(ctx context.Context, sub *ports.SubscriberData) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *SubscriberRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *SubscriberRepository) Search(ctx context.Context, keyword string) ([]*ports.SubscriberData, error) {
	args := m.Called(ctx, keyword)
	subs, _ := args.Get(0).([]*ports.SubscriberData)
	return subs, args.Error(1)
}

func (m *SubscriberRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SubscriberRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
