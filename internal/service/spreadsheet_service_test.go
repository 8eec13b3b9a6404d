package service

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"masterylog/internal/database/dbtest"
	"masterylog/internal/models"
)

func TestSpreadsheetExportAttempts(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	attempts := NewAttemptService(db, zap.NewNop())

	at := time.Date(2025, 9, 1, 17, 30, 0, 0, time.UTC)
	for _, pid := range []string{"LC-1", "LC-1", "LC-2"} {
		if _, err := attempts.Record(ctx, &models.Attempt{ProblemID: pid, Subject: "Algorithms", TimeSpentMinutes: 10, AttemptedAt: at}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "out", "attempts.xlsx")
	svc := NewSpreadsheetService(db, NewStatsService(db, gmt7, 0), zap.NewNop())
	if err := svc.ExportAttempts(ctx, path); err != nil {
		t.Fatalf("ExportAttempts() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{"Attempts", "Problems"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}

	rows, err := f.GetRows("Attempts")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Attempts rows = %d, want header + 3", len(rows))
	}
	if rows[0][5] != "Problem ID" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "2025-09-02 00:30" {
		t.Errorf("date = %q, want display zone", rows[1][1])
	}
	if rows[3][7] != "LC-2-Batch-1" {
		t.Errorf("batch id = %q", rows[3][7])
	}

	problems, err := f.GetRows("Problems")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(problems) != 3 {
		t.Fatalf("Problems rows = %d, want header + 2", len(problems))
	}
	if problems[1][0] != "LC-1" || problems[1][3] != "2" {
		t.Errorf("first problem row = %v", problems[1])
	}
}
