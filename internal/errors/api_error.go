package errors

// APIError represents a simple standardized error response.
// The Status field carries the provider-style status integer (always 0 for
// errors), matching what API clients expect alongside the HTTP status code.
type APIError struct {
	Error   string                 `json:"error"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewAPIError creates a new APIError with the given message and optional details.
func NewAPIError(message string, details map[string]interface{}) *APIError {
	return &APIError{
		Error:   message,
		Status:  0,
		Details: details,
	}
}
