package line

import (
	"fmt"
	"net/http"
)

// APIError represents an error response from the LINE Messaging API
type APIError struct {
	Operation   string
	StatusCode  int
	Description string
}

func (e APIError) Error() string {
	return fmt.Sprintf("line API error during %s: %s (status: %d)", e.Operation, e.Description, e.StatusCode)
}

func (e APIError) Code() string {
	return "LINE_API_ERROR"
}

func (e APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// ConfigurationError represents invalid client configuration
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field %s: %s", e.Field, e.Reason)
}

func (e ConfigurationError) Code() string {
	return "CONFIGURATION_ERROR"
}

func (e ConfigurationError) Temporary() bool {
	return false
}
