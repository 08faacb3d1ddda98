package backend

import (
	"context"
	"errors"
	"fmt"
)

// TransportError reports a lookup that never produced results: the
// network call failed, the status was not 2xx, or the body was unusable.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	// Status is set when the failure is the status code itself.
	Status bool
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if e.Err == nil {
		return "transport error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var terr *TransportError
	if errors.As(err, &terr) {
		return terr.StatusCode
	}
	return 0
}
