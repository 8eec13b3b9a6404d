package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"masterylog/internal/database"
	"masterylog/internal/mastery"
	"masterylog/internal/models"
	"masterylog/internal/repository"
)

// BackupVersion is written into every export document
const BackupVersion = "1.0"

// BackupData is the export document. Empty text fields are written as null, and so
// is any minutes field equal to 0.
type BackupData struct {
	Version            string             `json:"version"`
	ExportID           string             `json:"exportId"`
	ExportDate         time.Time          `json:"exportDate"`
	ErrorLog           []AttemptBackup    `json:"errorLog"`
	MaterialLog        []MaterialBackup   `json:"materialLog"`
	RussianDrillingLog []DrillingBackup   `json:"russianDrillingLog"`
	Vocabulary         []VocabularyBackup `json:"vocabulary"`
	Tasklist           []TaskBackup       `json:"tasklist"`
	Analytics          mastery.Analytics  `json:"analytics"`
}

// AttemptBackup represents an attempt record for backup
type AttemptBackup struct {
	ID                 int64     `json:"id"`
	Subject            *string   `json:"subject"`
	MaterialNameEN     *string   `json:"materialNameEn"`
	MaterialNameRU     *string   `json:"materialNameRu"`
	ProblemID          *string   `json:"problemId"`
	ProblemTitle       *string   `json:"problemTitle"`
	BatchID            *string   `json:"batchId"`
	BatchAttemptIndex  int       `json:"batchAttemptIndex"`
	AttemptNumber      int       `json:"attemptNumber"`
	UsedResources      *string   `json:"usedResources"`
	Successful         bool      `json:"successful"`
	TimeSpentMinutes   *int      `json:"timeSpentMinutes"`
	ErrorsDescription  *string   `json:"errorsDescription"`
	ResolutionStrategy *string   `json:"resolutionStrategy"`
	Annotation         *string   `json:"annotation"`
	Commentary         *string   `json:"commentary"`
	StatusTag          *string   `json:"statusTag"`
	RelatedMaterial    *string   `json:"relatedMaterial"`
	Timestamp          time.Time `json:"timestamp"`
}

// MaterialBackup represents a material record for backup
type MaterialBackup struct {
	ID                   int64      `json:"id"`
	Subject              *string    `json:"subject"`
	MaterialID           *string    `json:"materialId"`
	MaterialNameEN       *string    `json:"materialNameEn"`
	Status               *string    `json:"status"`
	TotalProblems        int        `json:"totalProblems"`
	ProblemsSolved       int        `json:"problemsSolved"`
	AvgAttemptsLastBatch float64    `json:"avgAttemptsLastBatch"`
	Commentary           *string    `json:"commentary"`
	ResourcesList        *string    `json:"resourcesList"`
	LastReviewed         *time.Time `json:"lastReviewed"`
	ForcedStop           bool       `json:"forcedStop"`
}

// DrillingBackup represents a drilling log for backup
type DrillingBackup struct {
	ID                   int64     `json:"id"`
	Subject              *string   `json:"subject"`
	MaterialID           *string   `json:"materialId"`
	MaterialNameEN       *string   `json:"materialNameEn"`
	MaterialNameRU       *string   `json:"materialNameRu"`
	AttemptNumber        int       `json:"attemptNumber"`
	Status               *string   `json:"status"`
	ErrorsRU             *string   `json:"errorsRu"`
	ResolutionStrategyRU *string   `json:"resolutionStrategyRu"`
	CommentaryRU         *string   `json:"commentaryRu"`
	UsedKeywords         *string   `json:"usedKeywords"`
	Timestamp            time.Time `json:"timestamp"`
}

// VocabularyBackup represents a vocabulary entry for backup
type VocabularyBackup struct {
	ID                 int64     `json:"id"`
	RussianWord        *string   `json:"russianWord"`
	EnglishTranslation *string   `json:"englishTranslation"`
	Subject            *string   `json:"subject"`
	MaterialID         *string   `json:"materialId"`
	FirstSeen          time.Time `json:"firstSeen"`
	LastReviewed       time.Time `json:"lastReviewed"`
	ReviewCount        int       `json:"reviewCount"`
}

// TaskBackup represents a task for backup
type TaskBackup struct {
	ID        int64      `json:"id"`
	Task      *string    `json:"task"`
	Completed bool       `json:"completed"`
	Priority  *string    `json:"priority"`
	Deadline  *time.Time `json:"deadline"`
	CreatedAt time.Time  `json:"createdAt"`
}

// BackupFileName is the default export file name for a backup taken at t
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("backup_%s.json", t.Format("20060102_150405"))
}

// BackupService handles export and restore of every table
type BackupService struct {
	db     *database.DB
	stats  *StatsService
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, stats *StatsService, logger *zap.Logger) *BackupService {
	return &BackupService{db: db, stats: stats, logger: logger, now: time.Now}
}

// Export writes a complete backup to outputPath, creating its directory if needed
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}

	s.logger.Info("database exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes a complete backup to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	backup, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("backup written",
		zap.String("export_id", backup.ExportID),
		zap.Int("attempts", len(backup.ErrorLog)),
		zap.Int("materials", len(backup.MaterialLog)),
		zap.Int("drilling_logs", len(backup.RussianDrillingLog)),
		zap.Int("vocabulary", len(backup.Vocabulary)),
		zap.Int("tasks", len(backup.Tasklist)),
	)
	return nil
}

// Snapshot reads every table into a backup document
func (s *BackupService) Snapshot(ctx context.Context) (*BackupData, error) {
	attempts, err := repository.NewAttemptRepository(s.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export attempts: %w", err)
	}
	materials, err := repository.NewMaterialRepository(s.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export materials: %w", err)
	}
	drills, err := repository.NewDrillingRepository(s.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export drilling logs: %w", err)
	}
	vocab, err := repository.NewVocabularyRepository(s.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export vocabulary: %w", err)
	}
	tasks, err := repository.NewTaskRepository(s.db).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export tasks: %w", err)
	}

	loc := s.stats.Location()
	backup := &BackupData{
		Version:            BackupVersion,
		ExportID:           uuid.NewString(),
		ExportDate:         s.now().In(loc).Truncate(time.Second),
		ErrorLog:           make([]AttemptBackup, 0, len(attempts)),
		MaterialLog:        make([]MaterialBackup, 0, len(materials)),
		RussianDrillingLog: make([]DrillingBackup, 0, len(drills)),
		Vocabulary:         make([]VocabularyBackup, 0, len(vocab)),
		Tasklist:           make([]TaskBackup, 0, len(tasks)),
		Analytics:          s.stats.aggregate(attempts, materials),
	}
	for _, a := range attempts {
		backup.ErrorLog = append(backup.ErrorLog, attemptToBackup(a, loc))
	}
	for _, m := range materials {
		backup.MaterialLog = append(backup.MaterialLog, materialToBackup(m, loc))
	}
	for _, d := range drills {
		backup.RussianDrillingLog = append(backup.RussianDrillingLog, drillingToBackup(d, loc))
	}
	for _, v := range vocab {
		backup.Vocabulary = append(backup.Vocabulary, vocabularyToBackup(v, loc))
	}
	for _, t := range tasks {
		backup.Tasklist = append(backup.Tasklist, taskToBackup(t, loc))
	}
	return backup, nil
}

// Import restores a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores a backup, keeping ids, attempt numbers and batch ids.
// Rows are inserted in one transaction, so an id clash leaves the database as it was.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.Info("importing backup",
		zap.String("export_id", backup.ExportID),
		zap.Time("exported_at", backup.ExportDate),
	)

	err := s.db.WithinTx(ctx, func(tx *database.Tx) error {
		attempts := repository.NewAttemptRepository(tx)
		for _, b := range backup.ErrorLog {
			a := attemptFromBackup(b)
			if err := attempts.Restore(ctx, &a); err != nil {
				return err
			}
		}
		materials := repository.NewMaterialRepository(tx)
		for _, b := range backup.MaterialLog {
			m := materialFromBackup(b)
			if err := materials.Restore(ctx, &m); err != nil {
				return err
			}
		}
		drills := repository.NewDrillingRepository(tx)
		for _, b := range backup.RussianDrillingLog {
			d := drillingFromBackup(b)
			if err := drills.Restore(ctx, &d); err != nil {
				return err
			}
		}
		vocab := repository.NewVocabularyRepository(tx)
		for _, b := range backup.Vocabulary {
			v := vocabularyFromBackup(b)
			if err := vocab.Restore(ctx, &v); err != nil {
				return err
			}
		}
		tasks := repository.NewTaskRepository(tx)
		for _, b := range backup.Tasklist {
			t := taskFromBackup(b)
			if err := tasks.Restore(ctx, &t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to import backup: %w", err)
	}

	for _, table := range backupTables {
		if err := s.db.ResetSequence(ctx, table); err != nil {
			return fmt.Errorf("failed to reset id sequence for %s: %w", table, err)
		}
	}

	s.logger.Info("backup imported",
		zap.Int("attempts", len(backup.ErrorLog)),
		zap.Int("materials", len(backup.MaterialLog)),
		zap.Int("drilling_logs", len(backup.RussianDrillingLog)),
		zap.Int("vocabulary", len(backup.Vocabulary)),
		zap.Int("tasks", len(backup.Tasklist)),
	)
	return nil
}

var backupTables = []string{"attempt_logs", "material_logs", "drilling_logs", "vocabulary", "tasks"}

// Clear deletes every row from every table
func (s *BackupService) Clear(ctx context.Context) error {
	err := s.db.WithinTx(ctx, func(tx *database.Tx) error {
		if err := repository.NewAttemptRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewMaterialRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewDrillingRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewVocabularyRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return repository.NewTaskRepository(tx).DeleteAll(ctx)
	})
	if err != nil {
		return err
	}
	s.logger.Warn("all tables cleared")
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func stringOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func timeIn(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}

func attemptToBackup(a models.Attempt, loc *time.Location) AttemptBackup {
	return AttemptBackup{
		ID:                 a.ID,
		Subject:            nullIfEmpty(a.Subject),
		MaterialNameEN:     nullIfEmpty(a.MaterialNameEN),
		MaterialNameRU:     nullIfEmpty(a.MaterialNameRU),
		ProblemID:          nullIfEmpty(a.ProblemID),
		ProblemTitle:       nullIfEmpty(a.ProblemTitle),
		BatchID:            nullIfEmpty(a.BatchID),
		BatchAttemptIndex:  a.BatchAttemptIndex,
		AttemptNumber:      a.AttemptNumber,
		UsedResources:      nullIfEmpty(a.UsedResources),
		Successful:         a.Successful,
		TimeSpentMinutes:   nullIfZero(a.TimeSpentMinutes),
		ErrorsDescription:  nullIfEmpty(a.ErrorsDescription),
		ResolutionStrategy: nullIfEmpty(a.ResolutionStrategy),
		Annotation:         nullIfEmpty(a.Annotation),
		Commentary:         nullIfEmpty(a.Commentary),
		StatusTag:          nullIfEmpty(a.StatusTag),
		RelatedMaterial:    nullIfEmpty(a.RelatedMaterial),
		Timestamp:          a.AttemptedAt.In(loc),
	}
}

func attemptFromBackup(b AttemptBackup) models.Attempt {
	return models.Attempt{
		ID:                 b.ID,
		Subject:            stringOr(b.Subject),
		MaterialNameEN:     stringOr(b.MaterialNameEN),
		MaterialNameRU:     stringOr(b.MaterialNameRU),
		ProblemID:          stringOr(b.ProblemID),
		ProblemTitle:       stringOr(b.ProblemTitle),
		BatchID:            stringOr(b.BatchID),
		BatchAttemptIndex:  b.BatchAttemptIndex,
		AttemptNumber:      b.AttemptNumber,
		UsedResources:      stringOr(b.UsedResources),
		Successful:         b.Successful,
		TimeSpentMinutes:   intOr(b.TimeSpentMinutes),
		ErrorsDescription:  stringOr(b.ErrorsDescription),
		ResolutionStrategy: stringOr(b.ResolutionStrategy),
		Annotation:         stringOr(b.Annotation),
		Commentary:         stringOr(b.Commentary),
		StatusTag:          stringOr(b.StatusTag),
		RelatedMaterial:    stringOr(b.RelatedMaterial),
		AttemptedAt:        b.Timestamp,
	}
}

func materialToBackup(m models.Material, loc *time.Location) MaterialBackup {
	return MaterialBackup{
		ID:                   m.ID,
		Subject:              nullIfEmpty(m.Subject),
		MaterialID:           nullIfEmpty(m.MaterialID),
		MaterialNameEN:       nullIfEmpty(m.MaterialNameEN),
		Status:               nullIfEmpty(string(m.Status)),
		TotalProblems:        m.TotalProblems,
		ProblemsSolved:       m.ProblemsSolved,
		AvgAttemptsLastBatch: m.AvgAttemptsLastBatch,
		Commentary:           nullIfEmpty(m.Commentary),
		ResourcesList:        nullIfEmpty(m.ResourcesList),
		LastReviewed:         timeIn(m.LastReviewedAt, loc),
		ForcedStop:           m.ForcedStop,
	}
}

func materialFromBackup(b MaterialBackup) models.Material {
	return models.Material{
		ID:                   b.ID,
		Subject:              stringOr(b.Subject),
		MaterialID:           stringOr(b.MaterialID),
		MaterialNameEN:       stringOr(b.MaterialNameEN),
		Status:               models.MaterialStatus(stringOr(b.Status)),
		TotalProblems:        b.TotalProblems,
		ProblemsSolved:       b.ProblemsSolved,
		AvgAttemptsLastBatch: b.AvgAttemptsLastBatch,
		Commentary:           stringOr(b.Commentary),
		ResourcesList:        stringOr(b.ResourcesList),
		LastReviewedAt:       b.LastReviewed,
		ForcedStop:           b.ForcedStop,
	}
}

func drillingToBackup(d models.DrillingLog, loc *time.Location) DrillingBackup {
	return DrillingBackup{
		ID:                   d.ID,
		Subject:              nullIfEmpty(d.Subject),
		MaterialID:           nullIfEmpty(d.MaterialID),
		MaterialNameEN:       nullIfEmpty(d.MaterialNameEN),
		MaterialNameRU:       nullIfEmpty(d.MaterialNameRU),
		AttemptNumber:        d.AttemptNumber,
		Status:               nullIfEmpty(d.Status),
		ErrorsRU:             nullIfEmpty(d.ErrorsRU),
		ResolutionStrategyRU: nullIfEmpty(d.ResolutionStrategyRU),
		CommentaryRU:         nullIfEmpty(d.CommentaryRU),
		UsedKeywords:         nullIfEmpty(d.UsedKeywords),
		Timestamp:            d.DrilledAt.In(loc),
	}
}

func drillingFromBackup(b DrillingBackup) models.DrillingLog {
	return models.DrillingLog{
		ID:                   b.ID,
		Subject:              stringOr(b.Subject),
		MaterialID:           stringOr(b.MaterialID),
		MaterialNameEN:       stringOr(b.MaterialNameEN),
		MaterialNameRU:       stringOr(b.MaterialNameRU),
		AttemptNumber:        b.AttemptNumber,
		Status:               stringOr(b.Status),
		ErrorsRU:             stringOr(b.ErrorsRU),
		ResolutionStrategyRU: stringOr(b.ResolutionStrategyRU),
		CommentaryRU:         stringOr(b.CommentaryRU),
		UsedKeywords:         stringOr(b.UsedKeywords),
		DrilledAt:            b.Timestamp,
	}
}

func vocabularyToBackup(v models.VocabularyEntry, loc *time.Location) VocabularyBackup {
	return VocabularyBackup{
		ID:                 v.ID,
		RussianWord:        nullIfEmpty(v.RussianWord),
		EnglishTranslation: nullIfEmpty(v.EnglishTranslation),
		Subject:            nullIfEmpty(v.Subject),
		MaterialID:         nullIfEmpty(v.MaterialID),
		FirstSeen:          v.FirstSeenAt.In(loc),
		LastReviewed:       v.LastReviewedAt.In(loc),
		ReviewCount:        v.ReviewCount,
	}
}

func vocabularyFromBackup(b VocabularyBackup) models.VocabularyEntry {
	return models.VocabularyEntry{
		ID:                 b.ID,
		RussianWord:        stringOr(b.RussianWord),
		EnglishTranslation: stringOr(b.EnglishTranslation),
		Subject:            stringOr(b.Subject),
		MaterialID:         stringOr(b.MaterialID),
		FirstSeenAt:        b.FirstSeen,
		LastReviewedAt:     b.LastReviewed,
		ReviewCount:        b.ReviewCount,
	}
}

func taskToBackup(t models.Task, loc *time.Location) TaskBackup {
	return TaskBackup{
		ID:        t.ID,
		Task:      nullIfEmpty(t.Text),
		Completed: t.Completed,
		Priority:  nullIfEmpty(string(t.Priority)),
		Deadline:  timeIn(t.Deadline, loc),
		CreatedAt: t.CreatedAt.In(loc),
	}
}

func taskFromBackup(b TaskBackup) models.Task {
	priority := models.Priority(stringOr(b.Priority))
	if priority == "" {
		priority = models.PriorityMedium
	}
	return models.Task{
		ID:        b.ID,
		Text:      stringOr(b.Task),
		Completed: b.Completed,
		Priority:  priority,
		Deadline:  b.Deadline,
		CreatedAt: b.CreatedAt,
	}
}
