package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"masterylog/internal/mastery"
	"masterylog/internal/service"
)

var intensityMarks = []string{"·", "░", "▒", "▓", "█"}

func runStreak(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("streak")
	weeks := fs.Int("weeks", 12, "Weeks of calendar to draw")
	_ = fs.Parse(args)

	summary, err := a.stats.Streak(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d day(s)\n", summary.CurrentStreak)
	fmt.Printf("Successful attempts in window: %d\n", summary.SuccessCount)
	fmt.Printf("Active days in window: %d\n\n", len(summary.Calendar))

	today := time.Now().In(a.loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, a.loc)
	// Rows are weekdays, Monday first; the last column holds the current week.
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset-7*(*weeks-1))
	for row, label := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		var line strings.Builder
		line.WriteString(label + " ")
		for col := 0; col < *weeks; col++ {
			day := start.AddDate(0, 0, col*7+row)
			if day.After(today) {
				line.WriteString(" ")
				continue
			}
			line.WriteString(intensityMarks[mastery.Intensity(summary.Calendar[day.Format(mastery.DateLayout)])])
		}
		fmt.Println(line.String())
	}
	return nil
}

func runStats(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("stats")
	asJSON := fs.Bool("json", false, "Print the full analytics document as JSON")
	_ = fs.Parse(args)

	analytics, err := a.stats.Analytics(ctx)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analytics)
	}

	o := analytics.OverallStats
	fmt.Printf("Problems: %d  Attempts: %d  Successful: %d  Success rate: %.1f%%  Time: %d min\n",
		o.TotalProblems, o.TotalAttempts, o.TotalSuccessfulAttempts, o.OverallSuccessRate*100, o.TotalTimeMinutes)
	ms := analytics.MaterialSummary
	fmt.Printf("Materials: %d  Forced stops: %d\n", ms.TotalMaterials, ms.ForcedStops)
	fmt.Println()

	if len(analytics.ProblemStats) == 0 {
		fmt.Println("No attempts logged")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "PROBLEM\tSUBJECT\tATTEMPTS\tSUCCESS\tAVG MIN\tBATCHES\tAVG/BATCH\tDAYS TO PROFICIENCY")
	for _, p := range analytics.ProblemStats {
		days := "-"
		if p.DaysToProficiency != nil {
			days = strconv.Itoa(*p.DaysToProficiency)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f%%\t%.1f\t%d\t%.1f\t%s\n",
			p.ProblemID, orDash(p.Subject), p.TotalAttempts, p.SuccessRate*100, p.AvgTimePerAttempt,
			p.BatchCount, p.AvgAttemptsPerBatch, days)
	}
	return w.Flush()
}

func runExport(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	output := fs.StringP("output", "o", "", "Output file (default: <export dir>/backup_YYYYMMDD_HHMMSS.json)")
	_ = fs.Parse(args)

	path := *output
	if path == "" {
		path = filepath.Join(a.cfg.Export.Dir, service.BackupFileName(time.Now()))
	}
	if err := a.backup.Export(ctx, path); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

func runExportXLSX(a *app, ctx context.Context, args []string) error {
	fs := newFlagSet("export-xlsx")
	output := fs.StringP("output", "o", "", "Output file (default: <export dir>/attempts_YYYYMMDD_HHMMSS.xlsx)")
	_ = fs.Parse(args)

	path := *output
	if path == "" {
		path = filepath.Join(a.cfg.Export.Dir, fmt.Sprintf("attempts_%s.xlsx", time.Now().Format("20060102_150405")))
	}
	if err := a.spreadsheet.ExportAttempts(ctx, path); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}
