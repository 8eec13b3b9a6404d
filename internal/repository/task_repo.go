package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"masterylog/internal/database"
	"masterylog/internal/models"
)

const taskColumns = `id, task, completed, priority, deadline, created_at`

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db database.DBTX
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db database.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task and sets its ID
func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	query := "INSERT INTO tasks (task, completed, priority, deadline, created_at) VALUES (?, ?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query,
		t.Text, t.Completed, string(t.Priority), dbTimePtr(t.Deadline), dbTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	t.ID = id
	return nil
}

// Restore inserts a task keeping its ID
func (r *TaskRepository) Restore(ctx context.Context, t *models.Task) error {
	query := "INSERT INTO tasks (id, task, completed, priority, deadline, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Text, t.Completed, string(t.Priority), dbTimePtr(t.Deadline), dbTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to restore task %d: %w", t.ID, err)
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	var t models.Task
	err := r.db.GetContext(ctx, &t, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

// List returns open tasks before completed ones, then high to low priority, then
// earliest deadline. Tasks without a deadline sort last within their priority.
func (r *TaskRepository) List(ctx context.Context) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY
			completed ASC,
			CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END ASC,
			CASE WHEN deadline IS NULL THEN 1 ELSE 0 END ASC,
			deadline ASC,
			id ASC
	`
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

// All returns every task in insertion order
func (r *TaskRepository) All(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, "SELECT "+taskColumns+" FROM tasks ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

// SetCompleted marks a task done or open again
func (r *TaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE tasks SET completed = ? WHERE id = ?", completed, id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireAffected(result, "task", id)
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(result, "task", id)
}

// DeleteAll removes every task
func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return nil
}
