package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/mastery"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// MaterialService tracks the mastery status of learning materials
type MaterialService struct {
	materials *repository.MaterialRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewMaterialService creates a new material service
func NewMaterialService(db *database.DB, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materials: repository.NewMaterialRepository(db),
		logger:    logger,
		now:       time.Now,
	}
}

// Upsert stores a material, overwriting the status fields of an existing material id.
// A missing review time is stamped with the current time.
func (s *MaterialService) Upsert(ctx context.Context, m *models.Material) error {
	if m.Status == "" {
		m.Status = models.StatusNotStarted
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m.LastReviewedAt == nil {
		now := s.now()
		m.LastReviewedAt = &now
	}

	if err := s.materials.Upsert(ctx, m); err != nil {
		return err
	}

	s.logger.Info("material upserted",
		zap.String("material_id", m.MaterialID),
		zap.String("status", string(m.Status)),
		zap.Int("problems_solved", m.ProblemsSolved),
		zap.Int("total_problems", m.TotalProblems),
	)
	return nil
}

// List returns every material, most recently reviewed first
func (s *MaterialService) List(ctx context.Context) ([]models.Material, error) {
	return s.materials.List(ctx)
}

// BySubject returns the materials of one subject
func (s *MaterialService) BySubject(ctx context.Context, subject string) ([]models.Material, error) {
	return s.materials.ListBySubject(ctx, subject)
}

// Delete removes a material. Drilling logs and vocabulary naming it are kept.
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("material deleted", zap.Int64("id", id))
	return nil
}

// SubjectStats summarises materials per subject, most recently active first
func (s *MaterialService) SubjectStats(ctx context.Context) ([]models.SubjectStats, error) {
	materials, err := s.materials.All(ctx)
	if err != nil {
		return nil, err
	}
	return subjectStats(materials), nil
}

func subjectStats(materials []models.Material) []models.SubjectStats {
	type acc struct {
		stats    models.SubjectStats
		ids      map[string]bool
		avgSum   float64
		avgCount int
	}

	bySubject := make(map[string]*acc)
	var order []string
	for _, m := range materials {
		if m.Subject == "" {
			continue
		}
		a, ok := bySubject[m.Subject]
		if !ok {
			a = &acc{stats: models.SubjectStats{Subject: m.Subject}, ids: make(map[string]bool)}
			bySubject[m.Subject] = a
			order = append(order, m.Subject)
		}
		a.ids[m.MaterialID] = true
		a.stats.TotalProblems += m.TotalProblems
		a.stats.ProblemsSolved += m.ProblemsSolved
		a.avgSum += m.AvgAttemptsLastBatch
		a.avgCount++
		if m.LastReviewedAt != nil && (a.stats.LastActivity == nil || m.LastReviewedAt.After(*a.stats.LastActivity)) {
			t := *m.LastReviewedAt
			a.stats.LastActivity = &t
		}
	}

	result := make([]models.SubjectStats, 0, len(order))
	for _, subject := range order {
		a := bySubject[subject]
		a.stats.Materials = len(a.ids)
		if a.avgCount > 0 {
			a.stats.AvgAttempts = mastery.Round(a.avgSum/float64(a.avgCount), 2)
		}
		result = append(result, a.stats)
	}

	sort.SliceStable(result, func(i, j int) bool {
		li, lj := result[i].LastActivity, result[j].LastActivity
		switch {
		case li == nil:
			return false
		case lj == nil:
			return true
		default:
			return li.After(*lj)
		}
	})
	return result
}
