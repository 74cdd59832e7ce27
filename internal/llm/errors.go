package llm

import "fmt"

// UnavailableError means the model call itself failed: transport error,
// timeout, or no usable candidates. Callers with a fallback path should
// degrade rather than propagate it.
type UnavailableError struct {
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model unavailable: %s", e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// ResponseError means the model answered but the payload did not survive the
// closed-schema boundary: unparsable JSON or a schema violation.
type ResponseError struct {
	Message string
	Content string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model response rejected: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model response rejected: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
