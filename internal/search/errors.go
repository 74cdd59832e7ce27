package search

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// TimeoutError means a single search call exceeded its deadline. Callers
// treat it as zero results for that query variant, not a fatal error.
type TimeoutError struct {
	Query string
	Cause error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("search timeout for query %q: %v", e.Query, e.Cause)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// UnavailableError means the engine could not be reached or refused the
// request. Recovered locally the same way as a timeout.
type UnavailableError struct {
	Query   string
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search unavailable for query %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("search unavailable for query %q: %s", e.Query, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// classifyError wraps a transport error as timeout or unavailable.
func classifyError(query string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Query: query, Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Query: query, Cause: err}
	}
	return &UnavailableError{Query: query, Message: "request failed", Cause: err}
}
