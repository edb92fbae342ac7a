package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// DomainMetrics is a mock implementation of ports.DomainMetrics
type DomainMetrics struct {
	mock.Mock
}

// NewDomainMetrics creates a DomainMetrics mock whose expectations are asserted on cleanup
func NewDomainMetrics(t *testing.T) *DomainMetrics {
	m := &DomainMetrics{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewQuietDomainMetrics creates a DomainMetrics mock that accepts any call
func NewQuietDomainMetrics(t *testing.T) *DomainMetrics {
	m := NewDomainMetrics(t)
	m.On("RecordCreated", mock.Anything).Maybe()
	m.On("RecordUpdated", mock.Anything).Maybe()
	m.On("RecordDeleted", mock.Anything).Maybe()
	m.On("RecordConflict", mock.Anything, mock.Anything).Maybe()
	m.On("RecordExpired", mock.Anything).Maybe()
	return m
}

func (m *DomainMetrics) RecordCreated(resource string) {
	m.Called(resource)
}

func (m *DomainMetrics) RecordUpdated(resource string) {
	m.Called(resource)
}

func (m *DomainMetrics) RecordDeleted(resource string) {
	m.Called(resource)
}

func (m *DomainMetrics) RecordConflict(resource, code string) {
	m.Called(resource, code)
}

func (m *DomainMetrics) RecordExpired(count int64) {
	m.Called(count)
}
