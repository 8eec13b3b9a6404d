package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"masterylog/internal/config"
	"masterylog/internal/database"
	"masterylog/internal/logger"
	"masterylog/internal/scheduler"
	"masterylog/internal/service"
)

func main() {
	// Define subcommands
	exportCmd := pflag.NewFlagSet("export", pflag.ExitOnError)
	importCmd := pflag.NewFlagSet("import", pflag.ExitOnError)
	scheduleCmd := pflag.NewFlagSet("schedule", pflag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.StringP("output", "o", "", "Output file path (default: <export dir>/backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.StringP("input", "i", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	// Schedule flags
	scheduleEvery := scheduleCmd.Duration("every", 0, "Interval between backups (default: backup.every from config)")
	scheduleDir := scheduleCmd.String("dir", "", "Directory for backup files (default: export.dir from config)")

	if len(os.Args) < 2 {
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

	// Initialize database
	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	stats := service.NewStatsService(db, cfg.DisplayLocation(), cfg.Streak.WindowDays)
	backupService := service.NewBackupService(db, stats, log)

	switch os.Args[1] {
	case "export":
		_ = exportCmd.Parse(os.Args[2:])
		handleExport(ctx, log, backupService, *exportOutput, cfg.Export.Dir)

	case "import":
		_ = importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: --input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, log, backupService, *importInput, *importClear)

	case "schedule":
		_ = scheduleCmd.Parse(os.Args[2:])
		every := *scheduleEvery
		if every == 0 {
			every = cfg.Backup.Every
		}
		dir := *scheduleDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		handleSchedule(log, backupService, dir, every)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, log *zap.Logger, backupService *service.BackupService, outputPath, exportDir string) {
	// Generate default filename if not provided
	if outputPath == "" {
		outputPath = filepath.Join(exportDir, service.BackupFileName(time.Now()))
	}

	fmt.Printf("Exporting database to: %s\n", outputPath)
	if err := backupService.Export(ctx, outputPath); err != nil {
		log.Fatal("export failed", zap.Error(err))
	}

	// Get file size
	fileInfo, err := os.Stat(outputPath)
	if err != nil {
		log.Fatal("failed to stat export", zap.Error(err))
	}
	fmt.Printf("Export complete! File size: %.2f KB\n", float64(fileInfo.Size())/1024)
}

func handleImport(ctx context.Context, log *zap.Logger, backupService *service.BackupService, inputPath string, clearData bool) {
	// Check if file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatal("input file does not exist", zap.String("path", inputPath))
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		confirmation, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(confirmation) != "yes" {
			fmt.Println("Import cancelled")
			return
		}

		fmt.Println("Clearing existing data...")
		if err := backupService.Clear(ctx); err != nil {
			log.Fatal("failed to clear database", zap.Error(err))
		}
	}

	fmt.Printf("Importing database from: %s\n", inputPath)
	if err := backupService.Import(ctx, inputPath); err != nil {
		log.Fatal("import failed", zap.Error(err))
	}

	fmt.Println("Import complete!")
}

func handleSchedule(log *zap.Logger, backupService *service.BackupService, dir string, every time.Duration) {
	s := scheduler.New(backupService, dir, log)
	if err := s.Start(every); err != nil {
		log.Fatal("failed to start backup scheduler", zap.Error(err))
	}
	fmt.Printf("Writing a backup to %s every %s. Press Ctrl+C to stop.\n", dir, every)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Stopping backup scheduler...")
	s.Stop()
}

func printUsage() {
	fmt.Println("Mastery Log Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]      Export database to JSON file")
	fmt.Println("  backup import [options]      Import database from JSON file")
	fmt.Println("  backup schedule [options]    Export on a fixed interval until interrupted")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -o, --output <file>   Output file path (default: <export dir>/backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -i, --input <file>    Input file path (required)")
	fmt.Println("  --clear               Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Schedule Options:")
	fmt.Println("  --every <duration>    Interval between backups, e.g. 6h (default: 24h)")
	fmt.Println("  --dir <path>          Directory for backup files")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export")
	fmt.Println("  backup export -o mybackup.json")
	fmt.Println("  backup import -i backup.json")
	fmt.Println("  backup import -i backup.json --clear")
	fmt.Println("  backup schedule --every 12h --dir ./backups")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./data/mastery-learning.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
	fmt.Println("  EXPORT_DIR       Default directory for backup files")
}
