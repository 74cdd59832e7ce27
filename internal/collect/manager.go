// Package collect runs research batches asynchronously and tracks their
// durable task state. Submission returns immediately; progress is polled
// through the task store, which survives process restarts.
package collect

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/alumni-research/internal/research"
	"github.com/jonathan/alumni-research/internal/types"
)

// TaskStore is the durable record of collection tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task *types.CollectionTask) error
	UpdateTask(ctx context.Context, task *types.CollectionTask) error
	GetTask(ctx context.Context, id uuid.UUID) (*types.CollectionTask, error)
}

// ProfileStore persists accepted profiles.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error)
}

// Researcher runs the per-name research pipeline.
type Researcher interface {
	ResearchName(ctx context.Context, name string) research.Outcome
}

// Manager drives collection tasks. All task-state mutation happens on the
// single goroutine running the batch, so updates are serialized per task.
type Manager struct {
	tasks      TaskStore
	profiles   ProfileStore
	researcher Researcher
	verbose    bool

	mu      sync.Mutex
	cancels map[uuid.UUID]context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager creates a task manager.
func NewManager(tasks TaskStore, profiles ProfileStore, researcher Researcher, verbose bool) *Manager {
	return &Manager{
		tasks:      tasks,
		profiles:   profiles,
		researcher: researcher,
		verbose:    verbose,
		cancels:    make(map[uuid.UUID]context.CancelFunc),
	}
}

// Submit records a new task and starts processing it in the background.
// Blank names are dropped; a batch with nothing left fails with
// *EmptyBatchError.
func (m *Manager) Submit(ctx context.Context, names []string, method string) (uuid.UUID, error) {
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	if len(trimmed) == 0 {
		return uuid.Nil, &EmptyBatchError{Submitted: len(names)}
	}

	if method == "" {
		method = types.MethodWebResearch
	}

	task := &types.CollectionTask{
		ID:         uuid.New(),
		Status:     types.TaskStatusRunning,
		InputNames: trimmed,
		Method:     method,
		StartedAt:  time.Now(),
	}

	if err := m.tasks.CreateTask(ctx, task); err != nil {
		return uuid.Nil, &PersistenceError{Message: "failed to record task", Cause: err}
	}

	// The batch outlives the submission request, so it runs on a fresh
	// context; cancellation goes through Cancel.
	runCtx, cancel := context.WithCancel(context.Background())
	m.mu.Lock()
	m.cancels[task.ID] = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go m.runBatch(runCtx, task)

	return task.ID, nil
}

// Status returns the last durably recorded state of a task.
func (m *Manager) Status(ctx context.Context, id uuid.UUID) (*types.CollectionTask, error) {
	task, err := m.tasks.GetTask(ctx, id)
	if err != nil {
		return nil, &PersistenceError{Message: "failed to read task", Cause: err}
	}
	if task == nil {
		return nil, &NotFoundError{ID: id}
	}
	return task, nil
}

// Cancel signals a running task to stop launching new per-name pipelines.
// In-flight names finish and their results are still recorded. Cancelling
// a task that already settled is a no-op.
func (m *Manager) Cancel(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	cancel, ok := m.cancels[id]
	m.mu.Unlock()
	if ok {
		cancel()
		return nil
	}

	task, err := m.Status(ctx, id)
	if err != nil {
		return err
	}
	if !task.Terminal() {
		// Running in another process; this instance cannot reach it
		return fmt.Errorf("task %s is not running in this process", id)
	}
	return nil
}

// Wait blocks until every background batch has settled. Intended for
// shutdown paths and tests.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// runBatch processes every name sequentially and persists task state after
// each one. It is the only writer for its task.
func (m *Manager) runBatch(ctx context.Context, task *types.CollectionTask) {
	defer m.wg.Done()
	defer func() {
		m.mu.Lock()
		delete(m.cancels, task.ID)
		m.mu.Unlock()
	}()

	cancelled := false
	for _, name := range task.InputNames {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		if m.verbose {
			log.Printf("[COLLECT] Task %s: researching %q", task.ID, name)
		}
		outcome := m.researcher.ResearchName(ctx, name)

		// Store writes use a fresh context: a cancelled task still records
		// results for names that were already in flight.
		if outcome.State == research.StateAccepted && outcome.Profile != nil {
			saved, err := m.profiles.UpsertProfile(context.Background(), outcome.Profile)
			if err != nil {
				m.failTask(task, &PersistenceError{Message: fmt.Sprintf("failed to persist profile for %q", name), Cause: err})
				return
			}
			task.AcceptedProfiles = append(task.AcceptedProfiles, saved.Summary())
		} else {
			reason := outcome.Reason
			if reason == "" {
				reason = "no verifiable identity match found"
			}
			task.RejectedNames = append(task.RejectedNames, types.RejectedName{Name: name, Reason: reason})
		}

		task.ProcessedCount++
		if err := m.tasks.UpdateTask(context.Background(), task); err != nil {
			m.failTask(task, &PersistenceError{Message: "failed to record task progress", Cause: err})
			return
		}
	}

	now := time.Now()
	task.EndedAt = &now
	if cancelled {
		task.Status = types.TaskStatusCancelled
	} else {
		task.Status = types.TaskStatusCompleted
	}

	if err := m.tasks.UpdateTask(context.Background(), task); err != nil {
		log.Printf("[COLLECT] Task %s: failed to record terminal state: %v", task.ID, err)
	}
}

// failTask moves the task to failed with the error preserved. Store
// failures here can only be logged; there is nowhere durable left to put
// them.
func (m *Manager) failTask(task *types.CollectionTask, cause error) {
	log.Printf("[COLLECT] Task %s failed: %v", task.ID, cause)

	now := time.Now()
	task.EndedAt = &now
	task.Status = types.TaskStatusFailed
	task.ErrorMessage = cause.Error()

	if err := m.tasks.UpdateTask(context.Background(), task); err != nil {
		log.Printf("[COLLECT] Task %s: failed to record failure: %v", task.ID, err)
	}
}

// AddManualProfile persists a manually entered profile, stamping a manual
// provenance record. The profile must pass validation first.
func (m *Manager) AddManualProfile(ctx context.Context, profile *types.Profile) (*types.Profile, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	if len(profile.DataSources) == 0 {
		profile.DataSources = []types.DataSourceRecord{{
			SourceType:      types.SourceManual,
			CollectedAt:     time.Now(),
			ConfidenceScore: 1.0,
		}}
		profile.ConfidenceScore = 1.0
	}
	profile.LastUpdated = time.Now()

	saved, err := m.profiles.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, &PersistenceError{Message: "failed to persist manual profile", Cause: err}
	}
	return saved, nil
}
