package types

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus constants
const (
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
	TaskStatusCancelled = "cancelled"
)

// Collection method constants
const (
	MethodWebResearch = "web-research"
	MethodManual      = "manual"
)

// RejectedName records one input name that did not survive the quality gate,
// with a human-readable reason.
type RejectedName struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CollectionTask is the durable state of one batch research run. It is
// mutated only by the task manager driving it and is terminal once status
// leaves "running".
type CollectionTask struct {
	ID               uuid.UUID        `json:"id"`
	Status           string           `json:"status"`
	InputNames       []string         `json:"input_names"`
	Method           string           `json:"method"`
	StartedAt        time.Time        `json:"started_at"`
	EndedAt          *time.Time       `json:"ended_at,omitempty"`
	ProcessedCount   int              `json:"processed_count"`
	AcceptedProfiles []ProfileSummary `json:"accepted_profiles,omitempty"`
	RejectedNames    []RejectedName   `json:"rejected_names,omitempty"`
	ErrorMessage     string           `json:"error_message,omitempty"`
}

// Terminal reports whether the task has reached a final state.
func (t *CollectionTask) Terminal() bool {
	return t.Status != TaskStatusRunning
}
