// internal/api/schema.go
package api

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// pipelineRequestSchema mirrors the service-side validation rules so malformed
// submissions are rejected before any request is sent.
var pipelineRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"company_name": map[string]any{
			"type":      "string",
			"minLength": 1,
			"maxLength": 100,
			"pattern":   `^[a-zA-Z0-9\s\-\.&']+$`,
		},
		"partner_company": map[string]any{
			"type":      "string",
			"minLength": 1,
			"maxLength": 100,
			"pattern":   `^[a-zA-Z0-9\s\-\.&']+$`,
		},
		"domain": map[string]any{
			"type": "string",
			"enum": AvailableDomains,
		},
	},
	"required": []string{"company_name", "partner_company", "domain"},
}

// ValidatePipelineRequest checks req against the pipeline request schema and
// returns a *ValidationError describing every violation.
func ValidatePipelineRequest(req PipelineRequest) error {
	document, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("api: marshal request: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(pipelineRequestSchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("api: schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Problems: problems}
}
