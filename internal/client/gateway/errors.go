package gateway

import "fmt"

// StatusError is returned for any non-2xx backend response other than 401.
// Detail carries the backend-provided message when the body had one.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// Message returns the backend detail or the given fallback.
func (e *StatusError) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}
