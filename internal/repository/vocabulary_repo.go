package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"masterylog/internal/database"
	"masterylog/internal/models"
)

const vocabularyColumns = `id, russian_word, english_translation, subject, material_id,
	first_seen_at, last_reviewed_at, review_count`

// VocabularyRepository handles database operations for vocabulary entries
type VocabularyRepository struct {
	db database.DBTX
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db database.DBTX) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// Upsert inserts a word or, when it already exists, refreshes its translation and
// last review and counts one more review
func (r *VocabularyRepository) Upsert(ctx context.Context, v *models.VocabularyEntry) error {
	d := r.db.GetDialect()
	query := `
		INSERT INTO vocabulary (
			russian_word, english_translation, subject, material_id,
			first_seen_at, last_reviewed_at, review_count
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		` + d.OnConflictUpdate("russian_word") + `
			english_translation = ` + d.Excluded("english_translation") + `,
			last_reviewed_at = ` + d.Excluded("last_reviewed_at") + `,
			review_count = review_count + 1`

	reviews := v.ReviewCount
	if reviews < 1 {
		reviews = 1
	}
	_, err := r.db.ExecContext(ctx, query,
		v.RussianWord, v.EnglishTranslation, v.Subject, v.MaterialID,
		dbTime(v.FirstSeenAt), dbTime(v.LastReviewedAt), reviews,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vocabulary: %w", err)
	}
	return nil
}

// Restore inserts an entry keeping its ID and review count
func (r *VocabularyRepository) Restore(ctx context.Context, v *models.VocabularyEntry) error {
	query := `
		INSERT INTO vocabulary (
			id, russian_word, english_translation, subject, material_id,
			first_seen_at, last_reviewed_at, review_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.RussianWord, v.EnglishTranslation, v.Subject, v.MaterialID,
		dbTime(v.FirstSeenAt), dbTime(v.LastReviewedAt), v.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("failed to restore vocabulary %d: %w", v.ID, err)
	}
	return nil
}

// GetByWord retrieves an entry by its Russian word
func (r *VocabularyRepository) GetByWord(ctx context.Context, word string) (*models.VocabularyEntry, error) {
	var v models.VocabularyEntry
	err := r.db.GetContext(ctx, &v, "SELECT "+vocabularyColumns+" FROM vocabulary WHERE russian_word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vocabulary %q: %w", word, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary: %w", err)
	}
	return &v, nil
}

// Search returns entries whose word or translation contains term, most recently
// reviewed first. An empty term returns everything.
func (r *VocabularyRepository) Search(ctx context.Context, term string) ([]models.VocabularyEntry, error) {
	var entries []models.VocabularyEntry
	var err error
	if term == "" {
		query := "SELECT " + vocabularyColumns + " FROM vocabulary ORDER BY last_reviewed_at DESC, id DESC"
		err = r.db.SelectContext(ctx, &entries, query)
	} else {
		pattern := "%" + term + "%"
		query := "SELECT " + vocabularyColumns + ` FROM vocabulary
			WHERE russian_word LIKE ? OR english_translation LIKE ?
			ORDER BY last_reviewed_at DESC, id DESC`
		err = r.db.SelectContext(ctx, &entries, query, pattern, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %w", err)
	}
	return entries, nil
}

// All returns every entry in insertion order
func (r *VocabularyRepository) All(ctx context.Context) ([]models.VocabularyEntry, error) {
	var entries []models.VocabularyEntry
	if err := r.db.SelectContext(ctx, &entries, "SELECT "+vocabularyColumns+" FROM vocabulary ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("failed to query vocabulary: %w", err)
	}
	return entries, nil
}

// Delete removes an entry
func (r *VocabularyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM vocabulary WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete vocabulary: %w", err)
	}
	return requireAffected(result, "vocabulary", id)
}

// DeleteAll removes every entry
func (r *VocabularyRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM vocabulary"); err != nil {
		return fmt.Errorf("failed to clear vocabulary: %w", err)
	}
	return nil
}
