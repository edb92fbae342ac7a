package errors

import (
	"errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeAlreadyExists
	ErrorTypeDependency

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeNotConnected
	ErrorTypeCache

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeAlreadyExists:
		return "ALREADY_EXISTS_ERROR"
	case ErrorTypeDependency:
		return "DEPENDENCY_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeNotConnected:
		return "NOT_CONNECTED_ERROR"
	case ErrorTypeCache:
		return "CACHE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used throughout the code base
const (
	ValidationError    = ErrorTypeValidation
	NotFoundError      = ErrorTypeNotFound
	AlreadyExistsError = ErrorTypeAlreadyExists
	DependencyError    = ErrorTypeDependency
	DatabaseError      = ErrorTypeDatabase
	NotConnectedError  = ErrorTypeNotConnected
	CacheError         = ErrorTypeCache
	ConfigurationError = ErrorTypeConfiguration
)

// Domain error codes. They travel in the "error" field of API responses.
const (
	CodeDuplicateEmail              = "DuplicateEmail"
	CodeEmailConflict               = "EmailConflict"
	CodeDuplicateName               = "DuplicateName"
	CodeNameConflict                = "NameConflict"
	CodeHasDependentSubscriptions   = "HasDependentSubscriptions"
	CodeSubscriberNotFound          = "SubscriberNotFound"
	CodeNewspaperNotFound           = "NewspaperNotFound"
	CodeDuplicateActiveSubscription = "DuplicateActiveSubscription"
	CodeNotConnected                = "NotConnected"
)

type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same type and code.
// Targets without a code match on type alone.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Code != "" {
		return e.Type == t.Type && e.Code == t.Code
	}
	return e.Type == t.Type
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// WithCode returns a copy of the error carrying a domain code.
func (e *AppError) WithCode(code string) *AppError {
	cp := *e
	cp.Code = code
	return &cp
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewAlreadyExistsError(message string) *AppError {
	return New(AlreadyExistsError, message)
}

func NewDependencyError(message string) *AppError {
	return New(DependencyError, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewNotConnectedError(message string) *AppError {
	return New(NotConnectedError, message).WithCode(CodeNotConnected)
}

func NewCacheError(message string, cause error) *AppError {
	return Wrap(CacheError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// Sentinels for the domain rules. Compare with errors.Is.
var (
	ErrDuplicateEmail              = NewAlreadyExistsError("email already exists").WithCode(CodeDuplicateEmail)
	ErrEmailConflict               = NewAlreadyExistsError("email is already used by another subscriber").WithCode(CodeEmailConflict)
	ErrDuplicateName               = NewAlreadyExistsError("newspaper name already exists").WithCode(CodeDuplicateName)
	ErrNameConflict                = NewAlreadyExistsError("newspaper name is already used by another newspaper").WithCode(CodeNameConflict)
	ErrHasDependentSubscriptions   = NewDependencyError("resource has dependent subscriptions").WithCode(CodeHasDependentSubscriptions)
	ErrSubscriberNotFound          = NewValidationError("subscriber does not exist").WithCode(CodeSubscriberNotFound)
	ErrNewspaperNotFound           = NewValidationError("newspaper does not exist").WithCode(CodeNewspaperNotFound)
	ErrDuplicateActiveSubscription = NewAlreadyExistsError("subscriber already has an active subscription to this newspaper").WithCode(CodeDuplicateActiveSubscription)
)

// Helper functions for error type checking
func typeOf(err error) (ErrorType, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type, true
	}
	return ErrorTypeUnknown, false
}

func IsNotFoundError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == NotFoundError
}

func IsAlreadyExistsError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == AlreadyExistsError
}

func IsDependencyError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == DependencyError
}

func IsValidationError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ValidationError
}

func IsDatabaseError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == DatabaseError
}

func IsNotConnectedError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == NotConnectedError
}

func IsConfigurationError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ConfigurationError
}

// TypeOf returns the category of err, or ErrorTypeUnknown for foreign errors
func TypeOf(err error) ErrorType {
	t, _ := typeOf(err)
	return t
}

// CodeOf returns the domain code carried by err, if any
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf returns the message of an AppError, or err.Error() otherwise
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
