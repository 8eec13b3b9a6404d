package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// VocabularyService maintains the Russian vocabulary list
type VocabularyService struct {
	vocab  *repository.VocabularyRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(db *database.DB, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		vocab:  repository.NewVocabularyRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

// Upsert adds a word, or counts another review of a word already listed
func (s *VocabularyService) Upsert(ctx context.Context, v *models.VocabularyEntry) error {
	if err := v.Validate(); err != nil {
		return err
	}

	now := s.now()
	if v.FirstSeenAt.IsZero() {
		v.FirstSeenAt = now
	}
	v.LastReviewedAt = now
	v.ReviewCount = 1

	if err := s.vocab.Upsert(ctx, v); err != nil {
		return err
	}
	s.logger.Info("vocabulary upserted", zap.String("russian_word", v.RussianWord))
	return nil
}

// Search returns words whose Russian or English text contains term
func (s *VocabularyService) Search(ctx context.Context, term string) ([]models.VocabularyEntry, error) {
	return s.vocab.Search(ctx, term)
}

// Get returns the entry for a Russian word
func (s *VocabularyService) Get(ctx context.Context, word string) (*models.VocabularyEntry, error) {
	return s.vocab.GetByWord(ctx, word)
}

// Delete removes an entry
func (s *VocabularyService) Delete(ctx context.Context, id int64) error {
	if err := s.vocab.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("vocabulary deleted", zap.Int64("id", id))
	return nil
}
