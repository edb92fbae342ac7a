package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("original error")
				return Wrap(DatabaseError, "database operation failed", cause)
			},
			expected: "DATABASE_ERROR: database operation failed (caused by: original error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := Wrap(DatabaseError, "query failed", cause)
	assert.Equal(t, cause, err.Unwrap())

	assert.Nil(t, New(NotFoundError, "resource not found").Unwrap())
}

func TestAppError_IsMatchesCode(t *testing.T) {
	wrapped := fmt.Errorf("create subscriber: %w", ErrDuplicateEmail)

	assert.True(t, stderrors.Is(wrapped, ErrDuplicateEmail))
	assert.False(t, stderrors.Is(wrapped, ErrEmailConflict))
	assert.True(t, stderrors.Is(wrapped, New(AlreadyExistsError, "")))
	assert.False(t, stderrors.Is(wrapped, New(NotFoundError, "")))
}

func TestAppError_WithCodeDoesNotMutateReceiver(t *testing.T) {
	base := NewValidationError("bad input")
	coded := base.WithCode("Custom")

	assert.Empty(t, base.Code)
	assert.Equal(t, "Custom", coded.Code)
	assert.Equal(t, base.Message, coded.Message)
}

func TestTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{"NotFound", NewNotFoundError("x"), IsNotFoundError},
		{"AlreadyExists", ErrDuplicateName, IsAlreadyExistsError},
		{"Dependency", ErrHasDependentSubscriptions, IsDependencyError},
		{"Validation", ErrSubscriberNotFound, IsValidationError},
		{"Database", NewDatabaseError("x", nil), IsDatabaseError},
		{"NotConnected", NewNotConnectedError("x"), IsNotConnectedError},
		{"Configuration", NewConfigurationError("x", nil), IsConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.True(t, tt.checker(fmt.Errorf("wrapped: %w", tt.err)))
			assert.False(t, tt.checker(fmt.Errorf("plain error")))
		})
	}
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "DEPENDENCY_ERROR", ErrorTypeDependency.String())
	assert.Equal(t, "NOT_CONNECTED_ERROR", ErrorTypeNotConnected.String())
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(99).String())
}

func TestAccessors(t *testing.T) {
	wrapped := fmt.Errorf("create subscriber: %w", ErrDuplicateEmail)

	assert.Equal(t, ErrorTypeAlreadyExists, TypeOf(wrapped))
	assert.Equal(t, CodeDuplicateEmail, CodeOf(wrapped))
	assert.Equal(t, "email already exists", MessageOf(wrapped))

	plain := stderrors.New("plain failure")
	assert.Equal(t, ErrorTypeUnknown, TypeOf(plain))
	assert.Empty(t, CodeOf(plain))
	assert.Equal(t, "plain failure", MessageOf(plain))
}
