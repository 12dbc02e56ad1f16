package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the interesting response classes. Callers match with
// errors.Is; everything else arrives as a *StatusError or transport error.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrServer       = errors.New("server error")
)

// StatusError is a non-2xx response that maps to no sentinel.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// statusError converts a non-2xx status into the matching error.
func statusError(status int, body string) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return fmt.Errorf("%w (status %d)", ErrServer, status)
	default:
		return &StatusError{Status: status, Body: body}
	}
}
