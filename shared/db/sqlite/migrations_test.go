package sqlite

import (
	"path/filepath"
	"testing"
)

func TestRunMigrations(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})
	err := database.Connect()
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	sqlDB := database.DB()

	var version int
	err = sqlDB.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}

	if version != migrations[len(migrations)-1].version {
		t.Errorf("schema version = %d, want %d", version, migrations[len(migrations)-1].version)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	// Running migrations a second time applies nothing new
	if err := runMigrations(database.DB()); err != nil {
		t.Fatalf("second runMigrations failed: %v", err)
	}

	var count int
	err := database.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != len(migrations) {
		t.Errorf("got %d applied migrations, want %d", count, len(migrations))
	}

	if err := database.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reconnecting to the same file replays nothing
	if err := database.Connect(); err != nil {
		t.Fatalf("reconnect error = %v", err)
	}
	defer database.Close()
}

func TestMigrations_Ordered(t *testing.T) {
	for i, m := range migrations {
		if m.version != i+1 {
			t.Errorf("migrations[%d].version = %d, want %d", i, m.version, i+1)
		}
		if m.name == "" {
			t.Errorf("migrations[%d] has no name", i)
		}
		if m.up == "" {
			t.Errorf("migrations[%d] has no up script", i)
		}
	}
}
