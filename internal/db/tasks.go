package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/alumni-research/internal/types"
)

// CreateTask records a new collection task.
func (db *DB) CreateTask(ctx context.Context, task *types.CollectionTask) error {
	inputNames, err := json.Marshal(task.InputNames)
	if err != nil {
		return fmt.Errorf("failed to marshal input names: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO collection_tasks (id, status, input_names, method, started_at, processed_count)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		task.ID, task.Status, inputNames, task.Method, task.StartedAt, task.ProcessedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateTask persists the task's full mutable state. The task manager
// serializes calls per task id, so a whole-row write cannot lose updates.
func (db *DB) UpdateTask(ctx context.Context, task *types.CollectionTask) error {
	accepted, err := json.Marshal(task.AcceptedProfiles)
	if err != nil {
		return fmt.Errorf("failed to marshal accepted profiles: %w", err)
	}
	rejected, err := json.Marshal(task.RejectedNames)
	if err != nil {
		return fmt.Errorf("failed to marshal rejected names: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE collection_tasks
		 SET status = $2, ended_at = $3, processed_count = $4,
		     accepted_profiles = $5, rejected_names = $6, error_message = $7
		 WHERE id = $1`,
		task.ID, task.Status, task.EndedAt, task.ProcessedCount,
		accepted, rejected, nullIfEmpty(task.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	return nil
}

// GetTask retrieves a collection task by id. Returns nil without error when
// no task exists.
func (db *DB) GetTask(ctx context.Context, id uuid.UUID) (*types.CollectionTask, error) {
	var (
		task         types.CollectionTask
		inputNames   []byte
		accepted     []byte
		rejected     []byte
		errorMessage *string
	)

	err := db.pool.QueryRow(ctx,
		`SELECT id, status, input_names, method, started_at, ended_at,
		        processed_count, accepted_profiles, rejected_names, error_message
		 FROM collection_tasks WHERE id = $1`,
		id,
	).Scan(&task.ID, &task.Status, &inputNames, &task.Method, &task.StartedAt,
		&task.EndedAt, &task.ProcessedCount, &accepted, &rejected, &errorMessage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if len(inputNames) > 0 {
		if err := json.Unmarshal(inputNames, &task.InputNames); err != nil {
			return nil, fmt.Errorf("failed to decode input names: %w", err)
		}
	}
	if len(accepted) > 0 {
		if err := json.Unmarshal(accepted, &task.AcceptedProfiles); err != nil {
			return nil, fmt.Errorf("failed to decode accepted profiles: %w", err)
		}
	}
	if len(rejected) > 0 {
		if err := json.Unmarshal(rejected, &task.RejectedNames); err != nil {
			return nil, fmt.Errorf("failed to decode rejected names: %w", err)
		}
	}
	if errorMessage != nil {
		task.ErrorMessage = *errorMessage
	}

	return &task, nil
}

// ListTasks retrieves recent collection tasks, newest first.
func (db *DB) ListTasks(ctx context.Context, limit int) ([]types.CollectionTask, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, status, method, started_at, ended_at, processed_count
		 FROM collection_tasks ORDER BY started_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []types.CollectionTask
	for rows.Next() {
		var task types.CollectionTask
		if err := rows.Scan(&task.ID, &task.Status, &task.Method, &task.StartedAt,
			&task.EndedAt, &task.ProcessedCount); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
