package models

import (
	"time"

	"masterylog/internal/validation"
)

// VocabularyEntry is a Russian word with its translation, keyed by RussianWord
type VocabularyEntry struct {
	ID                 int64     `db:"id"`
	RussianWord        string    `db:"russian_word"`
	EnglishTranslation string    `db:"english_translation"`
	Subject            string    `db:"subject"`
	MaterialID         string    `db:"material_id"`
	FirstSeenAt        time.Time `db:"first_seen_at"`
	LastReviewedAt     time.Time `db:"last_reviewed_at"`
	ReviewCount        int       `db:"review_count"`
}

func (v *VocabularyEntry) Validate() error {
	return validation.First(
		validation.Required("russian_word", v.RussianWord),
		validation.Required("english_translation", v.EnglishTranslation),
	)
}
