package collect

import (
	"fmt"

	"github.com/google/uuid"
)

// EmptyBatchError means a submission contained no usable names after
// trimming blanks.
type EmptyBatchError struct {
	Submitted int
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("batch contains no names (%d submitted, all blank)", e.Submitted)
}

// NotFoundError means no task exists with the requested id.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// PersistenceError wraps a store failure. It is fatal for the affected
// task: data loss risk is never silently swallowed.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("persistence failure: %s", e.Message)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
