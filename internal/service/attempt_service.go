package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/mastery"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// AttemptService records and edits attempt logs
type AttemptService struct {
	db       *database.DB
	attempts *repository.AttemptRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewAttemptService creates a new attempt service
func NewAttemptService(db *database.DB, logger *zap.Logger) *AttemptService {
	return &AttemptService{
		db:       db,
		attempts: repository.NewAttemptRepository(db),
		logger:   logger,
		now:      time.Now,
	}
}

// Record numbers a new attempt against the attempts already stored for its problem
// and saves it. History is read and the row written in one transaction.
func (s *AttemptService) Record(ctx context.Context, a *models.Attempt) (*models.Attempt, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	attempt := *a
	if attempt.StatusTag == "" {
		attempt.StatusTag = models.DefaultStatusTag
	}
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = s.now()
	}
	attempt.AttemptedAt = attempt.AttemptedAt.UTC().Truncate(time.Second)

	var meta mastery.AttemptMeta
	err := s.db.WithinTx(ctx, func(tx *database.Tx) error {
		repo := repository.NewAttemptRepository(tx)

		history, err := repo.ListByProblem(ctx, attempt.ProblemID)
		if err != nil {
			return err
		}

		meta = mastery.NextAttemptMeta(attempt.ProblemID, history)
		attempt.AttemptNumber = meta.AttemptNumber
		attempt.BatchID = meta.BatchID
		attempt.BatchAttemptIndex = meta.BatchAttemptIndex

		return repo.Create(ctx, &attempt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.logger.Info("attempt recorded",
		zap.Int64("id", attempt.ID),
		zap.String("problem_id", attempt.ProblemID),
		zap.Int("attempt_number", meta.AttemptNumber),
		zap.String("batch_id", meta.BatchID),
		zap.Int("batch_attempt_index", meta.BatchAttemptIndex),
		zap.Bool("successful", attempt.Successful),
	)
	return &attempt, nil
}

// List returns attempts matching filter, newest first
func (s *AttemptService) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	return s.attempts.List(ctx, filter)
}

// Last returns the most recently logged attempt
func (s *AttemptService) Last(ctx context.Context) (*models.Attempt, error) {
	return s.attempts.Last(ctx)
}

// Get returns one attempt
func (s *AttemptService) Get(ctx context.Context, id int64) (*models.Attempt, error) {
	return s.attempts.GetByID(ctx, id)
}

// Update applies edit to an attempt. Numbering is left as it was.
func (s *AttemptService) Update(ctx context.Context, id int64, edit models.AttemptEdit) (*models.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	edit.Apply(attempt)
	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	if err := s.attempts.Update(ctx, attempt); err != nil {
		return nil, err
	}

	s.logger.Info("attempt updated", zap.Int64("id", id), zap.String("problem_id", attempt.ProblemID))
	return attempt, nil
}

// Delete removes an attempt
func (s *AttemptService) Delete(ctx context.Context, id int64) error {
	if err := s.attempts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("attempt deleted", zap.Int64("id", id))
	return nil
}

// Subjects returns every subject seen in attempts
func (s *AttemptService) Subjects(ctx context.Context) ([]string, error) {
	return s.attempts.Subjects(ctx)
}
