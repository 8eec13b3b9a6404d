package service

import (
	"context"
	"time"

	"masterylog/internal/database"
	"masterylog/internal/mastery"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// DefaultStreakWindowDays is how far back the activity calendar reaches
const DefaultStreakWindowDays = 365

// StatsService computes analytics and streaks from stored rows
type StatsService struct {
	attempts   *repository.AttemptRepository
	materials  *repository.MaterialRepository
	loc        *time.Location
	windowDays int
	now        func() time.Time
}

// NewStatsService creates a stats service that reports dates in loc
func NewStatsService(db *database.DB, loc *time.Location, windowDays int) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if windowDays <= 0 {
		windowDays = DefaultStreakWindowDays
	}
	return &StatsService{
		attempts:   repository.NewAttemptRepository(db),
		materials:  repository.NewMaterialRepository(db),
		loc:        loc,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// Analytics aggregates every attempt and material
func (s *StatsService) Analytics(ctx context.Context) (mastery.Analytics, error) {
	attempts, err := s.attempts.All(ctx)
	if err != nil {
		return mastery.Analytics{}, err
	}
	materials, err := s.materials.All(ctx)
	if err != nil {
		return mastery.Analytics{}, err
	}
	return s.aggregate(attempts, materials), nil
}

func (s *StatsService) aggregate(attempts []models.Attempt, materials []models.Material) mastery.Analytics {
	local := make([]models.Attempt, len(attempts))
	for i, a := range attempts {
		a.AttemptedAt = a.AttemptedAt.In(s.loc)
		local[i] = a
	}
	return mastery.Aggregate(local, materials)
}

// Streak computes the activity calendar and current streak over the trailing window
func (s *StatsService) Streak(ctx context.Context) (mastery.StreakSummary, error) {
	now := s.now()
	since := now.AddDate(0, 0, -s.windowDays)

	attempts, err := s.attempts.List(ctx, models.AttemptFilter{Since: since})
	if err != nil {
		return mastery.StreakSummary{}, err
	}
	return mastery.ComputeStreak(attempts, since, now, s.loc), nil
}

// Location is the zone dates are reported in
func (s *StatsService) Location() *time.Location {
	return s.loc
}
