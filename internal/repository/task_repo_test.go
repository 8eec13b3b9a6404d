package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"masterylog/internal/database/dbtest"
	"masterylog/internal/models"
)

func TestTaskRepositoryOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(dbtest.New(t))

	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	soon := now.Add(24 * time.Hour)
	later := now.Add(72 * time.Hour)

	tasks := []models.Task{
		{Text: "low open", Priority: models.PriorityLow, CreatedAt: now},
		{Text: "high done", Priority: models.PriorityHigh, Completed: true, CreatedAt: now},
		{Text: "medium later", Priority: models.PriorityMedium, Deadline: &later, CreatedAt: now},
		{Text: "high no deadline", Priority: models.PriorityHigh, CreatedAt: now},
		{Text: "medium soon", Priority: models.PriorityMedium, Deadline: &soon, CreatedAt: now},
		{Text: "high soon", Priority: models.PriorityHigh, Deadline: &soon, CreatedAt: now},
	}
	for i := range tasks {
		if err := repo.Create(ctx, &tasks[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	expected := []string{"high soon", "high no deadline", "medium soon", "medium later", "low open", "high done"}
	if len(result) != len(expected) {
		t.Fatalf("List() = %d tasks, want %d", len(result), len(expected))
	}
	for i, text := range expected {
		if result[i].Text != text {
			t.Errorf("List()[%d] = %q, want %q", i, result[i].Text, text)
		}
	}
}

func TestTaskRepositorySetCompleted(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository(dbtest.New(t))

	task := &models.Task{Text: "review notes", Priority: models.PriorityMedium, CreatedAt: time.Now()}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.SetCompleted(ctx, task.ID, true); err != nil {
		t.Fatalf("SetCompleted() error = %v", err)
	}
	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !got.Completed {
		t.Error("Completed = false, want true")
	}
	if got.Deadline != nil {
		t.Errorf("Deadline = %v, want nil", got.Deadline)
	}

	if err := repo.SetCompleted(ctx, 999, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetCompleted(missing) error = %v, want ErrNotFound", err)
	}
}
