package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database/dbtest"
	"masterylog/internal/models"
)

func TestStatsServiceStreak(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	attempts := NewAttemptService(db, zap.NewNop())
	stats := NewStatsService(db, gmt7, 365)

	now := time.Date(2025, 8, 20, 9, 0, 0, 0, gmt7)
	stats.now = fixedClock(now)

	for _, at := range []time.Time{
		now.Add(-time.Hour),
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -2),
		now.AddDate(0, 0, -4),
		now.AddDate(-2, 0, 0),
	} {
		if _, err := attempts.Record(ctx, &models.Attempt{ProblemID: "P", Successful: true, AttemptedAt: at}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	streak, err := stats.Streak(ctx)
	if err != nil {
		t.Fatalf("Streak() error = %v", err)
	}
	if streak.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", streak.CurrentStreak)
	}
	if streak.SuccessCount != 4 {
		t.Errorf("SuccessCount = %d, want 4 inside the window", streak.SuccessCount)
	}
	if streak.Calendar["2025-08-20"] != 1 {
		t.Errorf("Calendar = %v", streak.Calendar)
	}
}

func TestStatsServiceAnalytics(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	attempts := NewAttemptService(db, zap.NewNop())
	materials := NewMaterialService(db, zap.NewNop())
	stats := NewStatsService(db, gmt7, 0)

	start := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		_, err := attempts.Record(ctx, &models.Attempt{
			Subject:          "Algorithms",
			MaterialNameEN:   "DP",
			ProblemID:        "LC-70",
			Successful:       i == 6,
			TimeSpentMinutes: 15,
			AttemptedAt:      start.Add(time.Duration(i) * 12 * time.Hour),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := materials.Upsert(ctx, &models.Material{MaterialID: "dp", MaterialNameEN: "DP", Status: models.StatusPracticing}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	result, err := stats.Analytics(ctx)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}

	if len(result.ProblemStats) != 1 {
		t.Fatalf("ProblemStats = %d, want 1", len(result.ProblemStats))
	}
	p := result.ProblemStats[0]
	if p.BatchCount != 2 || p.AvgAttemptsPerBatch != 3.5 {
		t.Errorf("batches = %d, avg = %v", p.BatchCount, p.AvgAttemptsPerBatch)
	}
	if p.SuccessRate != 0.143 {
		t.Errorf("SuccessRate = %v, want 0.143", p.SuccessRate)
	}
	if p.DaysToProficiency == nil || *p.DaysToProficiency != 3 {
		t.Errorf("DaysToProficiency = %v, want 3", p.DaysToProficiency)
	}
	if p.FirstAttempt.Location() != gmt7 {
		t.Errorf("FirstAttempt zone = %v, want GMT+7", p.FirstAttempt.Location())
	}
	if result.MaterialSummary.ByStatus["Practicing"] != 1 {
		t.Errorf("MaterialSummary = %+v", result.MaterialSummary)
	}
}
