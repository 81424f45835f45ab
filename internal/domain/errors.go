package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInsufficientCredit means the actor's balance was exhausted at
	// admission time. Distinct from processing failures: the caller must
	// wait for replenishment, not resubmit.
	ErrInsufficientCredit = errors.New("insufficient credits")

	// ErrInvalidEncoding means uploaded bytes are not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("document is not valid UTF-8 text")
)

// InsufficientCreditError carries the account whose balance was exhausted.
type InsufficientCreditError struct {
	AccountID int64
}

// Error implements the error interface
func (e *InsufficientCreditError) Error() string {
	return "insufficient credits"
}

// StatusCode implements the HTTPError interface
func (e *InsufficientCreditError) StatusCode() int {
	return http.StatusForbidden
}

// Is allows errors.Is() to match against ErrInsufficientCredit
func (e *InsufficientCreditError) Is(target error) bool {
	return target == ErrInsufficientCredit
}

// ConflictError represents a resource conflict with details about the
// existing resource
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
