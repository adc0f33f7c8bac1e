package fetch

import "fmt"

// StatusError reports an upstream response outside the 2xx range
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// GetStatusCode returns the upstream status code
func (e *StatusError) GetStatusCode() int {
	return e.StatusCode
}

// NewStatusError creates a StatusError. status is the full status line
// as reported by net/http, e.g. "500 Internal Server Error".
func NewStatusError(statusCode int, status string) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Status:     status,
	}
}
