package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types reported by providers or assigned locally.
const (
	ErrorTypeInvalidRequest = "invalid_request_error"
	ErrorTypeAuthentication = "authentication_error"
	ErrorTypeAPI            = "api_error"
	ErrorTypeTransport      = "transport_error"
)

// APIError is a failed completion call.
type APIError struct {
	Provider   Provider
	StatusCode int
	Type       string
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (%d %s): %s", e.Provider, e.StatusCode, e.Type, e.Message)
	}
	if e.Cause != nil && e.Message != e.Cause.Error() {
		return fmt.Sprintf("%s API error (%s): %s: %v", e.Provider, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API error (%s): %s", e.Provider, e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsInvalidCredentials reports whether err means the key or request was rejected outright.
func IsInvalidCredentials(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
		return true
	case apiErr.Type == ErrorTypeInvalidRequest, apiErr.Type == ErrorTypeAuthentication:
		return true
	}
	return false
}
