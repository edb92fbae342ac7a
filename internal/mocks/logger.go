package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"newsdesk.app/internal/ports"
)

// Logger is a mock implementation of ports.Logger
type Logger struct {
	mock.Mock
}

// NewLogger creates a Logger mock whose expectations are asserted on cleanup
func NewLogger(t *testing.T) *Logger {
	m := &Logger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewQuietLogger creates a Logger mock that accepts any call
func NewQuietLogger(t *testing.T) *Logger {
	m := NewLogger(t)
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

func (m *Logger) Debug(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *Logger) Info(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *Logger) Warn(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}

func (m *Logger) Error(msg string, fields ...ports.Field) {
	m.Called(msg, fields)
}
