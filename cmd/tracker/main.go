package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"masterylog/internal/config"
	"masterylog/internal/database"
	"masterylog/internal/logger"
	"masterylog/internal/repository"
	"masterylog/internal/service"
	"masterylog/internal/validation"
)

// app holds the services shared by every command
type app struct {
	cfg         *config.Config
	log         *zap.Logger
	loc         *time.Location
	attempts    *service.AttemptService
	materials   *service.MaterialService
	drills      *service.DrillingService
	vocabulary  *service.VocabularyService
	tasks       *service.TaskService
	stats       *service.StatsService
	backup      *service.BackupService
	spreadsheet *service.SpreadsheetService
}

type command func(a *app, ctx context.Context, args []string) error

var commands = map[string]command{
	"attempt":       runAttempt,
	"material":      runMaterial,
	"subjects":      runSubjects,
	"subject-stats": runSubjectStats,
	"drill":         runDrill,
	"vocab":         runVocab,
	"task":          runTask,
	"streak":        runStreak,
	"stats":         runStats,
	"timer":         runTimer,
	"export":        runExport,
	"export-xlsx":   runExportXLSX,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	log.Debug("database connection established", zap.String("type", cfg.Database.Type))

	ctx := context.Background()
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	a := newApp(cfg, log, db)
	if err := cmd(a, ctx, os.Args[2:]); err != nil {
		fail(log, os.Args[1], err)
		_ = log.Sync()
		db.Close()
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, log *zap.Logger, db *database.DB) *app {
	loc := cfg.DisplayLocation()
	stats := service.NewStatsService(db, loc, cfg.Streak.WindowDays)
	return &app{
		cfg:         cfg,
		log:         log,
		loc:         loc,
		attempts:    service.NewAttemptService(db, log),
		materials:   service.NewMaterialService(db, log),
		drills:      service.NewDrillingService(db, log),
		vocabulary:  service.NewVocabularyService(db, log),
		tasks:       service.NewTaskService(db, log),
		stats:       stats,
		backup:      service.NewBackupService(db, stats, log),
		spreadsheet: service.NewSpreadsheetService(db, stats, log),
	}
}

// usageError is returned for bad command lines; its message is shown as is
type usageError string

func (e usageError) Error() string { return string(e) }

// fail logs the detailed error and prints a message fit for the user
func fail(log *zap.Logger, command string, err error) {
	var verr validation.ValidationError
	var uerr usageError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(os.Stderr, "Invalid input: %s\n", verr.Error())
	case errors.As(err, &uerr):
		fmt.Fprintf(os.Stderr, "Error: %s\n", uerr.Error())
	case errors.Is(err, repository.ErrNotFound):
		fmt.Fprintln(os.Stderr, "Not found")
	default:
		log.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s: operation failed\n", command)
	}
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Mastery Log")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tracker <command> [subcommand] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  attempt add|list|last|edit|delete    Log and review problem attempts")
	fmt.Println("  material upsert|list|delete          Track learning materials")
	fmt.Println("  subjects                             List subjects with logged attempts")
	fmt.Println("  subject-stats                        Per-subject material progress")
	fmt.Println("  drill add|list|delete                Russian drilling sessions")
	fmt.Println("  vocab add|search|delete|import       Vocabulary")
	fmt.Println("  task add|list|toggle|delete          Task list")
	fmt.Println("  streak                               Activity calendar and current streak")
	fmt.Println("  stats                                Per-problem analytics")
	fmt.Println("  timer                                Phase timer, optionally logging an attempt")
	fmt.Println("  export                               Full JSON backup")
	fmt.Println("  export-xlsx                          Attempts workbook")
	fmt.Println()
	fmt.Printf("Run 'tracker <command> --help' for options. Known commands: %s\n", strings.Join(names, ", "))
}
