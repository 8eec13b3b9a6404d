package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// DrillingService logs Russian drilling sessions
type DrillingService struct {
	drills *repository.DrillingRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDrillingService creates a new drilling service
func NewDrillingService(db *database.DB, logger *zap.Logger) *DrillingService {
	return &DrillingService{
		drills: repository.NewDrillingRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

// Record stores a drilling session. The attempt number is whatever the caller
// supplies, 1 when unset.
func (s *DrillingService) Record(ctx context.Context, d *models.DrillingLog) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.AttemptNumber <= 0 {
		d.AttemptNumber = 1
	}
	if d.DrilledAt.IsZero() {
		d.DrilledAt = s.now()
	}

	if err := s.drills.Create(ctx, d); err != nil {
		return err
	}

	s.logger.Info("drilling logged",
		zap.Int64("id", d.ID),
		zap.String("material_id", d.MaterialID),
		zap.Int("attempt_number", d.AttemptNumber),
	)
	return nil
}

// List returns drilling logs, newest first
func (s *DrillingService) List(ctx context.Context) ([]models.DrillingLog, error) {
	return s.drills.List(ctx)
}

// ByMaterial returns the drilling logs of one material, newest first
func (s *DrillingService) ByMaterial(ctx context.Context, materialID string) ([]models.DrillingLog, error) {
	return s.drills.ListByMaterial(ctx, materialID)
}

// Delete removes a drilling log
func (s *DrillingService) Delete(ctx context.Context, id int64) error {
	if err := s.drills.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("drilling deleted", zap.Int64("id", id))
	return nil
}
