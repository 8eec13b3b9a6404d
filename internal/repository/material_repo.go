package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"masterylog/internal/database"
	"masterylog/internal/models"
)

const materialColumns = `id, subject, material_id, material_name_en, status, total_problems,
	problems_solved, avg_attempts_last_batch, commentary, resources_list, last_reviewed_at, forced_stop`

// MaterialRepository handles database operations for material status rows
type MaterialRepository struct {
	db database.DBTX
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db database.DBTX) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Upsert inserts a material or, when its material id already exists, overwrites
// status, last review, commentary and problem counts in place
func (r *MaterialRepository) Upsert(ctx context.Context, m *models.Material) error {
	d := r.db.GetDialect()
	query := `
		INSERT INTO material_logs (
			subject, material_id, material_name_en, status, total_problems,
			problems_solved, avg_attempts_last_batch, commentary, resources_list,
			last_reviewed_at, forced_stop
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		` + d.OnConflictUpdate("material_id") + `
			status = ` + d.Excluded("status") + `,
			last_reviewed_at = ` + d.Excluded("last_reviewed_at") + `,
			commentary = ` + d.Excluded("commentary") + `,
			total_problems = ` + d.Excluded("total_problems") + `,
			problems_solved = ` + d.Excluded("problems_solved")

	_, err := r.db.ExecContext(ctx, query,
		m.Subject, m.MaterialID, m.MaterialNameEN, string(m.Status), m.TotalProblems,
		m.ProblemsSolved, m.AvgAttemptsLastBatch, m.Commentary, m.ResourcesList,
		dbTimePtr(m.LastReviewedAt), m.ForcedStop,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert material: %w", err)
	}
	return nil
}

// Restore inserts a material keeping its ID
func (r *MaterialRepository) Restore(ctx context.Context, m *models.Material) error {
	query := `
		INSERT INTO material_logs (
			id, subject, material_id, material_name_en, status, total_problems,
			problems_solved, avg_attempts_last_batch, commentary, resources_list,
			last_reviewed_at, forced_stop
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Subject, m.MaterialID, m.MaterialNameEN, string(m.Status), m.TotalProblems,
		m.ProblemsSolved, m.AvgAttemptsLastBatch, m.Commentary, m.ResourcesList,
		dbTimePtr(m.LastReviewedAt), m.ForcedStop,
	)
	if err != nil {
		return fmt.Errorf("failed to restore material %d: %w", m.ID, err)
	}
	return nil
}

// GetByMaterialID retrieves a material by its caller-chosen key
func (r *MaterialRepository) GetByMaterialID(ctx context.Context, materialID string) (*models.Material, error) {
	var m models.Material
	err := r.db.GetContext(ctx, &m, "SELECT "+materialColumns+" FROM material_logs WHERE material_id = ?", materialID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("material %q: %w", materialID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

// List returns every material, most recently reviewed first
func (r *MaterialRepository) List(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	query := "SELECT " + materialColumns + " FROM material_logs ORDER BY last_reviewed_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &materials, query); err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	return materials, nil
}

// ListBySubject returns the materials of one subject, most recently reviewed first
func (r *MaterialRepository) ListBySubject(ctx context.Context, subject string) ([]models.Material, error) {
	var materials []models.Material
	query := "SELECT " + materialColumns + " FROM material_logs WHERE subject = ? ORDER BY last_reviewed_at DESC, id DESC"
	if err := r.db.SelectContext(ctx, &materials, query, subject); err != nil {
		return nil, fmt.Errorf("failed to query materials by subject: %w", err)
	}
	return materials, nil
}

// All returns every material in insertion order
func (r *MaterialRepository) All(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, "SELECT "+materialColumns+" FROM material_logs ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	return materials, nil
}

// Delete removes a material row. Rows that mention its material id are left alone.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM material_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return requireAffected(result, "material", id)
}

// DeleteAll removes every material
func (r *MaterialRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM material_logs"); err != nil {
		return fmt.Errorf("failed to clear materials: %w", err)
	}
	return nil
}
