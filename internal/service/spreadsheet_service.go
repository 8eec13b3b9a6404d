package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/repository"
)

const (
	attemptsSheet   = "Attempts"
	problemsSheet   = "Problems"
	sheetTimeLayout = "2006-01-02 15:04"
)

var attemptHeaders = []interface{}{
	"ID", "Date", "Subject", "Material (EN)", "Material (RU)", "Problem ID", "Problem Title",
	"Batch ID", "Batch Index", "Attempt #", "Successful", "Minutes", "Used Resources",
	"Errors", "Resolution Strategy", "Annotation", "Commentary", "Status", "Related Material",
}

var problemHeaders = []interface{}{
	"Problem ID", "Subject", "Material", "Attempts", "Successful", "Success Rate",
	"Total Minutes", "Avg Minutes", "Batches", "Avg Attempts/Batch", "Days to Proficiency",
	"First Attempt", "Last Attempt",
}

// SpreadsheetService writes attempt history and per-problem analytics to XLSX workbooks
type SpreadsheetService struct {
	attempts *repository.AttemptRepository
	stats    *StatsService
	logger   *zap.Logger
}

// NewSpreadsheetService creates a new spreadsheet service
func NewSpreadsheetService(db *database.DB, stats *StatsService, logger *zap.Logger) *SpreadsheetService {
	return &SpreadsheetService{
		attempts: repository.NewAttemptRepository(db),
		stats:    stats,
		logger:   logger,
	}
}

// ExportAttempts writes an "Attempts" sheet of raw rows and a "Problems" sheet of
// per-problem analytics to outputPath
func (s *SpreadsheetService) ExportAttempts(ctx context.Context, outputPath string) error {
	attempts, err := s.attempts.All(ctx)
	if err != nil {
		return err
	}
	analytics, err := s.stats.Analytics(ctx)
	if err != nil {
		return err
	}
	loc := s.stats.Location()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), attemptsSheet)
	if _, err := f.NewSheet(problemsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, attemptsSheet, 1, attemptHeaders); err != nil {
		return err
	}
	for i, a := range attempts {
		row := []interface{}{
			a.ID, a.AttemptedAt.In(loc).Format(sheetTimeLayout), a.Subject, a.MaterialNameEN,
			a.MaterialNameRU, a.ProblemID, a.ProblemTitle, a.BatchID, a.BatchAttemptIndex,
			a.AttemptNumber, a.Successful, a.TimeSpentMinutes, a.UsedResources,
			a.ErrorsDescription, a.ResolutionStrategy, a.Annotation, a.Commentary,
			a.StatusTag, a.RelatedMaterial,
		}
		if err := writeRow(f, attemptsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, problemsSheet, 1, problemHeaders); err != nil {
		return err
	}
	for i, p := range analytics.ProblemStats {
		var days interface{}
		if p.DaysToProficiency != nil {
			days = *p.DaysToProficiency
		}
		row := []interface{}{
			p.ProblemID, p.Subject, p.Material, p.TotalAttempts, p.SuccessfulAttempts,
			p.SuccessRate, p.TotalTimeMinutes, p.AvgTimePerAttempt, p.BatchCount,
			p.AvgAttemptsPerBatch, days,
			p.FirstAttempt.Format(sheetTimeLayout), p.LastAttempt.Format(sheetTimeLayout),
		}
		if err := writeRow(f, problemsSheet, i+2, row); err != nil {
			return err
		}
	}

	for _, sheet := range []struct {
		name    string
		columns int
	}{{attemptsSheet, len(attemptHeaders)}, {problemsSheet, len(problemHeaders)}} {
		last, err := excelize.CoordinatesToCellName(sheet.columns, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.name, "A1", last, header); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	s.logger.Info("attempts exported to workbook",
		zap.String("path", outputPath),
		zap.Int("attempts", len(attempts)),
		zap.Int("problems", len(analytics.ProblemStats)),
	)
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
