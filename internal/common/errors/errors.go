// internal/common/errors/errors.go

// Package errors provides standardized error handling for the NLU service.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeParseFailed       ErrorCode = "PARSE_ERROR"
	ErrCodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeBatchTooLarge     ErrorCode = "BATCH_TOO_LARGE"
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeSessionStore      ErrorCode = "SESSION_STORE_ERROR"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. HTTP Status Mapping
// ==========================

var httpStatusByCode = map[ErrorCode]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeParseFailed:       http.StatusUnprocessableEntity,
	ErrCodeSessionNotFound:   http.StatusNotFound,
	ErrCodeBatchTooLarge:     http.StatusBadRequest,
	ErrCodeCatalogLoadFailed: http.StatusInternalServerError,
	ErrCodeSessionStore:      http.StatusServiceUnavailable,
	ErrCodeInternal:          http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code associated with the error code.
func (e *StandardError) HTTPStatus() int {
	if status, ok := httpStatusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError creates a non-retryable parse error.
func NewParseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseFailed,
		Message:   "Failed to parse input text",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable session lookup error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBatchTooLargeError creates a non-retryable batch size error.
func NewBatchTooLargeError(size, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeBatchTooLarge,
		Message:   "Batch exceeds maximum size",
		Details:   fmt.Sprintf("got %d items, limit %d", size, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLoadFailedError creates a non-retryable catalog bootstrap error.
func NewCatalogLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Product catalog could not be loaded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError creates a retryable session storage error.
func NewSessionStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStore,
		Message:   "Session store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures any error is represented as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}
