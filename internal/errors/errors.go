package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrNotFound     ErrorType = "NOT_FOUND"
	ErrInaccessible ErrorType = "INACCESSIBLE"
	ErrRateLimit    ErrorType = "RATE_LIMIT"
	ErrInvalidInput ErrorType = "INVALID_INPUT"
	ErrInternal     ErrorType = "INTERNAL"
	ErrUnauthorized ErrorType = "UNAUTHORIZED"
	ErrForbidden    ErrorType = "FORBIDDEN"
	ErrConflict     ErrorType = "CONFLICT"
)

// AppError represents an application error
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// TypeOf returns the type of the outermost AppError in err's chain, or
// ErrInternal when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrInternal
}

// MessageOf returns the user-facing message of the outermost AppError in err's chain.
func MessageOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func is(err error, errType ErrorType) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == errType
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool { return is(err, ErrNotFound) }

// IsInaccessible checks if the error is an access denied error from an upstream host
func IsInaccessible(err error) bool { return is(err, ErrInaccessible) }

// IsRateLimit checks if the error is a rate limit error
func IsRateLimit(err error) bool { return is(err, ErrRateLimit) }

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool { return is(err, ErrInvalidInput) }

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool { return is(err, ErrUnauthorized) }

// IsForbidden checks if the error is a forbidden error
func IsForbidden(err error) bool { return is(err, ErrForbidden) }

// IsConflict checks if the error is a conflict error
func IsConflict(err error) bool { return is(err, ErrConflict) }

// RateLimitError represents a GitHub API rate limit error
type RateLimitError struct {
	ResetTime time.Time
	Limit     int
	Remaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %v (limit: %d, remaining: %d)",
		e.ResetTime, e.Limit, e.Remaining)
}

// NewRateLimitError wraps the rate limit details in a RATE_LIMIT AppError
func NewRateLimitError(resetTime time.Time, limit, remaining int) *AppError {
	return New(ErrRateLimit, "GitHub API rate limit exceeded", &RateLimitError{
		ResetTime: resetTime,
		Limit:     limit,
		Remaining: remaining,
	})
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return New(ErrNotFound, message, err)
}

// NewInaccessibleError creates a new inaccessible error
func NewInaccessibleError(message string, err error) *AppError {
	return New(ErrInaccessible, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, err error) *AppError {
	return New(ErrUnauthorized, message, err)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, err error) *AppError {
	return New(ErrForbidden, message, err)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, err error) *AppError {
	return New(ErrConflict, message, err)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}

// NotFoundError represents a missing stored resource
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewResourceNotFoundError creates a NOT_FOUND AppError for a specific resource
func NewResourceNotFoundError(resource, id string) *AppError {
	cause := &NotFoundError{Resource: resource, ID: id}
	return New(ErrNotFound, cause.Error(), cause)
}
