package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database/dbtest"
	"masterylog/internal/models"
	"masterylog/internal/repository"
	"masterylog/internal/validation"
)

var gmt7 = time.FixedZone("GMT+7", 7*60*60)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAttemptServiceRecordNumbersSequentially(t *testing.T) {
	ctx := context.Background()
	svc := NewAttemptService(dbtest.New(t), zap.NewNop())

	for n := 1; n <= 12; n++ {
		a, err := svc.Record(ctx, &models.Attempt{ProblemID: "LC-7", Successful: n%3 == 0, TimeSpentMinutes: n})
		if err != nil {
			t.Fatalf("Record() #%d error = %v", n, err)
		}

		wantBatch := (n + 4) / 5
		if a.AttemptNumber != n {
			t.Errorf("attempt %d: AttemptNumber = %d", n, a.AttemptNumber)
		}
		if want := fmt.Sprintf("LC-7-Batch-%d", wantBatch); a.BatchID != want {
			t.Errorf("attempt %d: BatchID = %q, want %q", n, a.BatchID, want)
		}
		if want := (n-1)%5 + 1; a.BatchAttemptIndex != want {
			t.Errorf("attempt %d: BatchAttemptIndex = %d, want %d", n, a.BatchAttemptIndex, want)
		}
		if a.StatusTag != models.DefaultStatusTag {
			t.Errorf("StatusTag = %q, want default", a.StatusTag)
		}
	}

	// Another problem starts its own numbering
	other, err := svc.Record(ctx, &models.Attempt{ProblemID: "LC-8"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if other.AttemptNumber != 1 || other.BatchID != "LC-8-Batch-1" {
		t.Errorf("first attempt at new problem = %+v", other)
	}
}

func TestAttemptServiceRecordAfterDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewAttemptService(dbtest.New(t), zap.NewNop())

	var ids []int64
	for i := 0; i < 3; i++ {
		a, err := svc.Record(ctx, &models.Attempt{ProblemID: "P"})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		ids = append(ids, a.ID)
	}
	if err := svc.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The gap left by attempt 1 stays; numbering is not reused
	next, err := svc.Record(ctx, &models.Attempt{ProblemID: "P"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if next.AttemptNumber != 4 {
		t.Errorf("AttemptNumber after delete = %d, want 4", next.AttemptNumber)
	}
}

func TestAttemptServiceRecordValidation(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	svc := NewAttemptService(db, zap.NewNop())

	_, err := svc.Record(ctx, &models.Attempt{ProblemID: "  "})
	var verr validation.ValidationError
	if !errors.As(err, &verr) || verr.Field != "problem_id" {
		t.Fatalf("Record(blank problem) error = %v, want problem_id ValidationError", err)
	}

	all, err := repository.NewAttemptRepository(db).All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("rejected attempt was stored")
	}
}

func TestAttemptServiceRecordStampsTime(t *testing.T) {
	ctx := context.Background()
	svc := NewAttemptService(dbtest.New(t), zap.NewNop())
	now := time.Date(2025, 7, 1, 21, 15, 30, 500, gmt7)
	svc.now = fixedClock(now)

	a, err := svc.Record(ctx, &models.Attempt{ProblemID: "P"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !a.AttemptedAt.Equal(now.Truncate(time.Second)) {
		t.Errorf("AttemptedAt = %v, want %v", a.AttemptedAt, now.Truncate(time.Second))
	}

	last, err := svc.Last(ctx)
	if err != nil {
		t.Fatalf("Last() error = %v", err)
	}
	if last.ID != a.ID || !last.AttemptedAt.Equal(a.AttemptedAt) {
		t.Errorf("Last() = %+v, want %+v", last, a)
	}
}

func TestAttemptServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewAttemptService(dbtest.New(t), zap.NewNop())

	a, err := svc.Record(ctx, &models.Attempt{ProblemID: "P", TimeSpentMinutes: 10, Annotation: "keep"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	resolution := "draw the recursion tree"
	minutes := 35
	success := true
	updated, err := svc.Update(ctx, a.ID, models.AttemptEdit{
		ResolutionStrategy: &resolution,
		TimeSpentMinutes:   &minutes,
		Successful:         &success,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ResolutionStrategy != resolution || updated.TimeSpentMinutes != 35 || !updated.Successful {
		t.Errorf("Update() = %+v", updated)
	}

	stored, err := svc.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Annotation != "keep" || stored.AttemptNumber != 1 || stored.TimeSpentMinutes != 35 {
		t.Errorf("stored after Update() = %+v", stored)
	}

	negative := -5
	if _, err := svc.Update(ctx, a.ID, models.AttemptEdit{TimeSpentMinutes: &negative}); err == nil {
		t.Error("Update() with negative minutes should fail")
	}
	if _, err := svc.Update(ctx, 999, models.AttemptEdit{}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}
