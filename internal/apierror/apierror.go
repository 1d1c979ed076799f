// Package apierror defines the JSON error envelopes the API returns. Handlers
// never serialize raw error values to clients; everything goes through here so
// internal detail stays in the logs.
package apierror

// APIError carries a single human-readable message.
type APIError struct {
	Detail string `json:"detail"`
}

func New(detalle string) *APIError {
	return &APIError{Detail: detalle}
}

// ValidationError lists per-field problems from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Datos de entrada invalidos", Fields: fields}
}
