// internal/common/validation/validate.go

// Package validation sanitizes and validates API inputs before they reach
// the NLU pipeline.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hydropony/junction2025-googlecloud/internal/common/errors"
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	multiSpace     = regexp.MustCompile(` +`)
	sessionIDShape = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Limits carries the configured validation bounds.
type Limits struct {
	MinTextLength int
	MaxTextLength int
	MaxBatchSize  int
}

// DefaultLimits returns the stock validation bounds.
func DefaultLimits() Limits {
	return Limits{MinTextLength: 1, MaxTextLength: 5000, MaxBatchSize: 100}
}

// ValidateText validates and sanitizes input text. Control characters are
// stripped and runs of spaces collapsed before length checks apply.
func ValidateText(text string, limits Limits) (string, *errors.StandardError) {
	if text == "" {
		return "", errors.NewValidationError("Text field is required", "MISSING_TEXT")
	}

	text = strings.TrimSpace(text)

	if len(text) < limits.MinTextLength {
		return "", errors.NewValidationError(
			fmt.Sprintf("Text must be at least %d characters", limits.MinTextLength),
			"TEXT_TOO_SHORT",
		)
	}
	if len(text) > limits.MaxTextLength {
		return "", errors.NewValidationError(
			fmt.Sprintf("Text must be at most %d characters", limits.MaxTextLength),
			"TEXT_TOO_LONG",
		)
	}

	text = controlChars.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")

	return text, nil
}

// ValidateContext validates a caller-supplied context object. Keys are
// strings by construction in Go; values must be scalars, lists or maps.
func ValidateContext(context map[string]interface{}) (map[string]interface{}, *errors.StandardError) {
	if context == nil {
		return map[string]interface{}{}, nil
	}

	validated := make(map[string]interface{}, len(context))
	for key, value := range context {
		switch value.(type) {
		case string, bool, int, int32, int64, float32, float64,
			map[string]interface{}, []interface{}, []string, nil:
			validated[key] = value
		default:
			return nil, errors.NewValidationError(
				fmt.Sprintf("Context value for '%s' has invalid type", key),
				"INVALID_CONTEXT_VALUE",
			)
		}
	}

	return validated, nil
}

// ValidateSessionID validates session ID format. An empty ID is allowed
// (the session store generates one).
func ValidateSessionID(sessionID string) (string, *errors.StandardError) {
	if sessionID == "" {
		return "", nil
	}

	if !sessionIDShape.MatchString(sessionID) {
		return "", errors.NewValidationError(
			"Session ID contains invalid characters",
			"INVALID_SESSION_ID_FORMAT",
		)
	}
	if len(sessionID) > 100 {
		return "", errors.NewValidationError(
			"Session ID is too long (max 100 characters)",
			"SESSION_ID_TOO_LONG",
		)
	}

	return sessionID, nil
}

// ValidateBatch validates a batch of texts, sanitizing each item.
func ValidateBatch(texts []string, limits Limits) ([]string, *errors.StandardError) {
	if len(texts) == 0 {
		return nil, errors.NewValidationError("Batch request cannot be empty", "EMPTY_BATCH")
	}
	if len(texts) > limits.MaxBatchSize {
		return nil, errors.NewBatchTooLargeError(len(texts), limits.MaxBatchSize)
	}

	validated := make([]string, 0, len(texts))
	for i, text := range texts {
		sanitized, err := ValidateText(text, limits)
		if err != nil {
			return nil, errors.NewValidationError(
				fmt.Sprintf("Item %d in batch: %s", i, err.Message),
				err.Details,
			)
		}
		validated = append(validated, sanitized)
	}

	return validated, nil
}
