// internal/server/schemas.go
package server

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/hydropony/junction2025-googlecloud/internal/common/errors"
)

// Request bodies are checked against JSON schemas before field-level
// validation, so type errors surface with a schema message instead of a
// decode failure.

const parseRequestSchema = `{
	"type": "object",
	"required": ["text"],
	"properties": {
		"text": {"type": "string"},
		"language": {"type": "string", "enum": ["en", "fi", "sv"]},
		"context": {"type": "object"},
		"session_id": {"type": "string"}
	},
	"additionalProperties": false
}`

const batchRequestSchema = `{
	"type": "object",
	"required": ["texts"],
	"properties": {
		"texts": {
			"type": "array",
			"items": {"type": "string"}
		},
		"context": {"type": "object"},
		"session_id": {"type": "string"}
	},
	"additionalProperties": false
}`

var (
	parseSchema = mustSchema(parseRequestSchema)
	batchSchema = mustSchema(batchRequestSchema)
)

func mustSchema(doc string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic("invalid request schema: " + err.Error())
	}
	return schema
}

func validateBody(schema *gojsonschema.Schema, body []byte) *errors.StandardError {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.NewValidationError("Request body is not valid JSON", "MALFORMED_JSON")
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, schemaErr := range result.Errors() {
			details = append(details, schemaErr.String())
		}
		return errors.NewValidationError("Request body failed validation", strings.Join(details, "; "))
	}
	return nil
}
