package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// TaskService manages the to-do list
type TaskService struct {
	tasks  *repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(db *database.DB, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:  repository.NewTaskRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

// Add creates an open task, medium priority unless stated
func (s *TaskService) Add(ctx context.Context, t *models.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.Completed = false
	t.CreatedAt = s.now()

	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	s.logger.Info("task added", zap.Int64("id", t.ID), zap.String("priority", string(t.Priority)))
	return nil
}

// List returns open tasks first, then by priority and deadline
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.tasks.List(ctx)
}

// Toggle flips a task between open and completed and returns the new state
func (s *TaskService) Toggle(ctx context.Context, id int64) (bool, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	completed := !task.Completed
	if err := s.tasks.SetCompleted(ctx, id, completed); err != nil {
		return false, err
	}
	s.logger.Info("task toggled", zap.Int64("id", id), zap.Bool("completed", completed))
	return completed, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("task deleted", zap.Int64("id", id))
	return nil
}
