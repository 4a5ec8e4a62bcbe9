// internal/common/validation/validate_test.go
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropony/junction2025-googlecloud/internal/common/errors"
)

func TestValidateText(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain text", input: "where is my order", expected: "where is my order"},
		{name: "trims whitespace", input: "  hello  ", expected: "hello"},
		{name: "collapses spaces", input: "two   missing   items", expected: "two missing items"},
		{name: "strips control chars", input: "hello\x00world", expected: "helloworld"},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 5001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateText(tt.input, limits)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, errors.ErrCodeValidation, err.Code)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateContext(t *testing.T) {
	ctx, err := ValidateContext(map[string]interface{}{
		"order_number": "A123",
		"retry_count":  3,
		"flags":        []interface{}{"a", "b"},
		"nested":       map[string]interface{}{"k": "v"},
	})
	require.Nil(t, err)
	assert.Equal(t, "A123", ctx["order_number"])

	_, err = ValidateContext(map[string]interface{}{"bad": struct{}{}})
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeValidation, err.Code)
}

func TestValidateContext_NilBecomesEmpty(t *testing.T) {
	ctx, err := ValidateContext(nil)
	require.Nil(t, err)
	assert.NotNil(t, ctx)
	assert.Empty(t, ctx)
}

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: ""},
		{input: "session-1"},
		{input: "a_B-9"},
		{input: "has space", wantErr: true},
		{input: "semi;colon", wantErr: true},
		{input: strings.Repeat("x", 101), wantErr: true},
	}

	for _, tt := range tests {
		got, err := ValidateSessionID(tt.input)
		if tt.wantErr {
			assert.NotNil(t, err, "input: %q", tt.input)
			continue
		}
		require.Nil(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.input, got)
	}
}

func TestValidateBatch(t *testing.T) {
	limits := DefaultLimits()

	texts, err := ValidateBatch([]string{" one ", "two"}, limits)
	require.Nil(t, err)
	assert.Equal(t, []string{"one", "two"}, texts)

	_, err = ValidateBatch(nil, limits)
	require.NotNil(t, err)

	tooMany := make([]string, 101)
	for i := range tooMany {
		tooMany[i] = "x"
	}
	_, err = ValidateBatch(tooMany, limits)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeBatchTooLarge, err.Code)

	_, err = ValidateBatch([]string{"ok", ""}, limits)
	require.NotNil(t, err)
	assert.Equal(t, errors.ErrCodeValidation, err.Code)
}
