// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the pipeline service. Message carries
// the server-provided error text when the body could be parsed, otherwise the
// raw HTTP status.
type APIError struct {
	StatusCode int
	ErrorType  string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ValidationError reports client-side request validation failures. The request
// is never sent when validation fails.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "api: invalid request: " + strings.Join(e.Problems, "; ")
}

// errorBody mirrors the service's standard error response shape.
type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}
