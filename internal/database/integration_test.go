package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func openMigrated(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigrated(t)
	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	tables := []string{"attempt_logs", "material_logs", "drilling_logs", "vocabulary", "tasks"}
	for _, table := range tables {
		var name string
		err := db.GetContext(ctx, &name, "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// A second run must be a no-op
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("Re-running migrations failed: %v", err)
	}
	var applied int
	if err := db.GetContext(ctx, &applied, "SELECT COUNT(*) FROM migrations"); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if applied != 1 {
		t.Errorf("Expected 1 recorded migration, got %d", applied)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openMigrated(t)
	ctx := context.Background()

	err := db.WithinTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO tasks (task, priority, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
			"review chapter 3", "high")
		return err
	})
	if err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tasks WHERE task = ?", "review chapter 3"); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 task, got %d", count)
	}

	errBoom := errors.New("boom")
	err = db.WithinTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO tasks (task, priority, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
			"never stored", "low"); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected errBoom, got %v", err)
	}

	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM tasks WHERE task = ?", "never stored"); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 tasks after rollback, got %d", count)
	}
}

func TestExecReturningID(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()

	first, err := db.ExecReturningID(ctx, "INSERT INTO tasks (task, created_at) VALUES (?, CURRENT_TIMESTAMP)", "a")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	second, err := db.ExecReturningID(ctx, "INSERT INTO tasks (task, created_at) VALUES (?, CURRENT_TIMESTAMP)", "b")
	if err != nil {
		t.Fatalf("ExecReturningID() error = %v", err)
	}
	if second != first+1 {
		t.Errorf("Expected sequential ids, got %d then %d", first, second)
	}
}

func TestRunMigrationsFSOrder(t *testing.T) {
	db, err := Initialize(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"002_seed.sql":  {Data: []byte("INSERT INTO notes (body) VALUES ('hello');")},
		"001_notes.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);")},
	}

	ctx := context.Background()
	if err := db.RunMigrationsFS(ctx, fsys); err != nil {
		t.Fatalf("RunMigrationsFS() error = %v", err)
	}

	var body string
	if err := db.GetContext(ctx, &body, "SELECT body FROM notes"); err != nil {
		t.Fatalf("Failed to read seeded row: %v", err)
	}
	if body != "hello" {
		t.Errorf("Expected 'hello', got %q", body)
	}
}
