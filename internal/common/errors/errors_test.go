// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err      *StandardError
		expected int
	}{
		{NewValidationError("bad input", "MISSING_TEXT"), http.StatusBadRequest},
		{NewParseError("boom"), http.StatusUnprocessableEntity},
		{NewSessionNotFoundError("s1"), http.StatusNotFound},
		{NewBatchTooLargeError(150, 100), http.StatusBadRequest},
		{NewSessionStoreError(fmt.Errorf("redis gone")), http.StatusServiceUnavailable},
		{NewInternalError(fmt.Errorf("oops")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.HTTPStatus(), "code: %s", tt.err.Code)
	}
}

func TestRetryableFlags(t *testing.T) {
	assert.True(t, NewSessionStoreError(fmt.Errorf("transient")).Retryable)
	assert.False(t, NewValidationError("bad", "").Retryable)
	assert.False(t, NewInternalError(fmt.Errorf("bug")).Retryable)
}

func TestNormalize(t *testing.T) {
	stdErr := NewValidationError("bad", "")
	assert.Same(t, stdErr, Normalize(stdErr))

	wrapped := Normalize(fmt.Errorf("plain error"))
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrCodeInternal, wrapped.Code)
	assert.Equal(t, "plain error", wrapped.Details)
}

func TestErrorString(t *testing.T) {
	err := NewSessionNotFoundError("abc")
	assert.Contains(t, err.Error(), "SESSION_NOT_FOUND")
}
