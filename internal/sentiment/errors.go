package sentiment

import (
	"fmt"
	"net/http"
)

// APIError represents an error response from the classification API
type APIError struct {
	StatusCode  int
	Description string
}

func (e APIError) Error() string {
	return fmt.Sprintf("sentiment API error: %s (status: %d)", e.Description, e.StatusCode)
}

func (e APIError) Code() string {
	return "SENTIMENT_API_ERROR"
}

func (e APIError) Temporary() bool {
	// 503 is also how the inference API reports a model still loading
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// IsRetryable determines if an error should be retried
func IsRetryable(err error) bool {
	if apiErr, ok := err.(APIError); ok {
		return apiErr.Temporary()
	}
	// Network-level failures are worth one more attempt.
	return true
}
