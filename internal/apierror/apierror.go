// Package apierror provides the standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// FieldError describes one failed validation rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError wraps multiple field errors under the contract's "errors" key.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func NewValidation(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
