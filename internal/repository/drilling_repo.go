package repository

import (
	"context"
	"fmt"

	"masterylog/internal/database"
	"masterylog/internal/models"
)

const drillingColumns = `id, subject, material_id, material_name_en, material_name_ru, attempt_number,
	status, errors_ru, resolution_strategy_ru, commentary_ru, used_keywords, drilled_at`

// DrillingRepository handles database operations for drilling logs
type DrillingRepository struct {
	db database.DBTX
}

// NewDrillingRepository creates a new drilling repository
func NewDrillingRepository(db database.DBTX) *DrillingRepository {
	return &DrillingRepository{db: db}
}

// Create inserts a drilling log and sets its ID
func (r *DrillingRepository) Create(ctx context.Context, d *models.DrillingLog) error {
	query := `
		INSERT INTO drilling_logs (
			subject, material_id, material_name_en, material_name_ru, attempt_number,
			status, errors_ru, resolution_strategy_ru, commentary_ru, used_keywords, drilled_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		d.Subject, d.MaterialID, d.MaterialNameEN, d.MaterialNameRU, d.AttemptNumber,
		d.Status, d.ErrorsRU, d.ResolutionStrategyRU, d.CommentaryRU, d.UsedKeywords, dbTime(d.DrilledAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create drilling log: %w", err)
	}
	d.ID = id
	return nil
}

// Restore inserts a drilling log keeping its ID
func (r *DrillingRepository) Restore(ctx context.Context, d *models.DrillingLog) error {
	query := `
		INSERT INTO drilling_logs (
			id, subject, material_id, material_name_en, material_name_ru, attempt_number,
			status, errors_ru, resolution_strategy_ru, commentary_ru, used_keywords, drilled_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Subject, d.MaterialID, d.MaterialNameEN, d.MaterialNameRU, d.AttemptNumber,
		d.Status, d.ErrorsRU, d.ResolutionStrategyRU, d.CommentaryRU, d.UsedKeywords, dbTime(d.DrilledAt),
	)
	if err != nil {
		return fmt.Errorf("failed to restore drilling log %d: %w", d.ID, err)
	}
	return nil
}

// List returns drilling logs, newest first
func (r *DrillingRepository) List(ctx context.Context) ([]models.DrillingLog, error) {
	var logs []models.DrillingLog
	query := "SELECT " + drillingColumns + " FROM drilling_logs ORDER BY drilled_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("failed to query drilling logs: %w", err)
	}
	return logs, nil
}

// ListByMaterial returns the drilling logs that reference materialID
func (r *DrillingRepository) ListByMaterial(ctx context.Context, materialID string) ([]models.DrillingLog, error) {
	var logs []models.DrillingLog
	query := "SELECT " + drillingColumns + " FROM drilling_logs WHERE material_id = ? ORDER BY drilled_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &logs, query, materialID); err != nil {
		return nil, fmt.Errorf("failed to query drilling logs by material: %w", err)
	}
	return logs, nil
}

// All returns every drilling log in insertion order
func (r *DrillingRepository) All(ctx context.Context) ([]models.DrillingLog, error) {
	var logs []models.DrillingLog
	if err := r.db.SelectContext(ctx, &logs, "SELECT "+drillingColumns+" FROM drilling_logs ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query drilling logs: %w", err)
	}
	return logs, nil
}

// Delete removes a drilling log
func (r *DrillingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM drilling_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete drilling log: %w", err)
	}
	return requireAffected(result, "drilling log", id)
}

// DeleteAll removes every drilling log
func (r *DrillingRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM drilling_logs"); err != nil {
		return fmt.Errorf("failed to clear drilling logs: %w", err)
	}
	return nil
}
