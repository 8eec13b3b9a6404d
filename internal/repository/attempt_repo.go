package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"masterylog/internal/database"
	"masterylog/internal/models"
)

const attemptColumns = `id, subject, material_name_en, material_name_ru, problem_id, problem_title,
	batch_id, batch_attempt_index, attempt_number, used_resources, successful, time_spent_minutes,
	errors_description, resolution_strategy, annotation, commentary, status_tag, related_material,
	attempted_at`

// AttemptRepository handles database operations for attempt logs
type AttemptRepository struct {
	db database.DBTX
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db database.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create inserts a numbered attempt and sets its ID
func (r *AttemptRepository) Create(ctx context.Context, a *models.Attempt) error {
	query := `
		INSERT INTO attempt_logs (
			subject, material_name_en, material_name_ru, problem_id, problem_title,
			batch_id, batch_attempt_index, attempt_number, used_resources, successful,
			time_spent_minutes, errors_description, resolution_strategy, annotation,
			commentary, status_tag, related_material, attempted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		a.Subject, a.MaterialNameEN, a.MaterialNameRU, a.ProblemID, a.ProblemTitle,
		a.BatchID, a.BatchAttemptIndex, a.AttemptNumber, a.UsedResources, a.Successful,
		a.TimeSpentMinutes, a.ErrorsDescription, a.ResolutionStrategy, a.Annotation,
		a.Commentary, a.StatusTag, a.RelatedMaterial, dbTime(a.AttemptedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	a.ID = id
	return nil
}

// Restore inserts an attempt keeping its ID and numbering as they are
func (r *AttemptRepository) Restore(ctx context.Context, a *models.Attempt) error {
	query := `
		INSERT INTO attempt_logs (
			id, subject, material_name_en, material_name_ru, problem_id, problem_title,
			batch_id, batch_attempt_index, attempt_number, used_resources, successful,
			time_spent_minutes, errors_description, resolution_strategy, annotation,
			commentary, status_tag, related_material, attempted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Subject, a.MaterialNameEN, a.MaterialNameRU, a.ProblemID, a.ProblemTitle,
		a.BatchID, a.BatchAttemptIndex, a.AttemptNumber, a.UsedResources, a.Successful,
		a.TimeSpentMinutes, a.ErrorsDescription, a.ResolutionStrategy, a.Annotation,
		a.Commentary, a.StatusTag, a.RelatedMaterial, dbTime(a.AttemptedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to restore attempt %d: %w", a.ID, err)
	}
	return nil
}

// GetByID retrieves an attempt by ID
func (r *AttemptRepository) GetByID(ctx context.Context, id int64) (*models.Attempt, error) {
	var a models.Attempt
	err := r.db.GetContext(ctx, &a, "SELECT "+attemptColumns+" FROM attempt_logs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("attempt %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return &a, nil
}

// ListByProblem returns every stored attempt at problemID
func (r *AttemptRepository) ListByProblem(ctx context.Context, problemID string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	query := "SELECT " + attemptColumns + " FROM attempt_logs WHERE problem_id = ? ORDER BY attempt_number ASC, id ASC"
	if err := r.db.SelectContext(ctx, &attempts, query, problemID); err != nil {
		return nil, fmt.Errorf("failed to query attempts for problem: %w", err)
	}
	return attempts, nil
}

// List returns attempts matching filter, newest first
func (r *AttemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Subject != "" {
		where = append(where, "subject = ?")
		args = append(args, filter.Subject)
	}
	if filter.ProblemID != "" {
		where = append(where, "problem_id = ?")
		args = append(args, filter.ProblemID)
	}
	if !filter.Since.IsZero() {
		where = append(where, "attempted_at >= ?")
		args = append(args, dbTime(filter.Since))
	}

	query := "SELECT " + attemptColumns + " FROM attempt_logs"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY attempted_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	var attempts []models.Attempt
	if err := r.db.SelectContext(ctx, &attempts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	return attempts, nil
}

// All returns every attempt in insertion order
func (r *AttemptRepository) All(ctx context.Context) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := r.db.SelectContext(ctx, &attempts, "SELECT "+attemptColumns+" FROM attempt_logs ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	return attempts, nil
}

// Last returns the most recently inserted attempt
func (r *AttemptRepository) Last(ctx context.Context) (*models.Attempt, error) {
	var a models.Attempt
	err := r.db.GetContext(ctx, &a, "SELECT "+attemptColumns+" FROM attempt_logs ORDER BY id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("last attempt: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last attempt: %w", err)
	}
	return &a, nil
}

// Update writes the editable fields of an attempt
func (r *AttemptRepository) Update(ctx context.Context, a *models.Attempt) error {
	query := `
		UPDATE attempt_logs SET
			problem_id = ?,
			errors_description = ?,
			resolution_strategy = ?,
			commentary = ?,
			time_spent_minutes = ?,
			successful = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		a.ProblemID, a.ErrorsDescription, a.ResolutionStrategy, a.Commentary,
		a.TimeSpentMinutes, a.Successful, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attempt: %w", err)
	}
	return requireAffected(result, "attempt", a.ID)
}

// Delete removes an attempt. Later attempts keep their numbers.
func (r *AttemptRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM attempt_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete attempt: %w", err)
	}
	return requireAffected(result, "attempt", id)
}

// DeleteAll removes every attempt
func (r *AttemptRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attempt_logs"); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}
	return nil
}

// Subjects returns the distinct non-empty subjects seen in attempts
func (r *AttemptRepository) Subjects(ctx context.Context) ([]string, error) {
	var subjects []string
	query := "SELECT DISTINCT subject FROM attempt_logs WHERE subject <> '' ORDER BY subject"
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	return subjects, nil
}
