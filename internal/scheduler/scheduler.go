// Package scheduler runs periodic backups in the background.
package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"masterylog/internal/service"
)

// Exporter writes a full backup to a file
type Exporter interface {
	Export(ctx context.Context, outputPath string) error
}

// Scheduler manages the periodic backup job
type Scheduler struct {
	scheduler *gocron.Scheduler
	exporter  Exporter
	dir       string
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a scheduler that writes backups into dir
func New(exporter Exporter, dir string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		exporter:  exporter,
		dir:       dir,
		logger:    logger,
		now:       time.Now,
	}
}

// Start takes a backup now and then once every interval, without blocking
func (s *Scheduler) Start(every time.Duration) error {
	if err := s.schedule(every); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("backup scheduler started", zap.Duration("every", every), zap.String("dir", s.dir))
	return nil
}

func (s *Scheduler) schedule(every time.Duration) error {
	if every < time.Minute {
		return fmt.Errorf("backup interval must be at least a minute, got %s", every)
	}
	if _, err := s.scheduler.Every(every).Do(s.runBackup); err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}
	return nil
}

// Stop terminates the scheduled job, waiting for a running backup to finish
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce writes a single backup and returns its path
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	path := filepath.Join(s.dir, service.BackupFileName(s.now()))
	if err := s.exporter.Export(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Scheduler) runBackup() {
	path, err := s.RunOnce(context.Background())
	if err != nil {
		s.logger.Error("scheduled backup failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled backup written", zap.String("path", path))
}
