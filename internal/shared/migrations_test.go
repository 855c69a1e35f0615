package shared

import (
	"bytes"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func newMigrator(t *testing.T) (*Migrator, *sql.DB, *bytes.Buffer) {
	t.Helper()

	db, err := NewDatabase(DatabaseConfig{Path: MemoryDatabase})
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logs := &bytes.Buffer{}
	m, err := NewMigrator(db, log.New(logs))
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}
	return m, db, logs
}

func versions(ms []Migration) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.Version
	}
	return out
}

func TestMigrator(t *testing.T) {
	t.Run("loads paired migrations in order", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if diff := cmp.Diff([]int{0, 1}, versions(migrations)); diff != "" {
			t.Errorf("versions mismatch (-want +got):\n%s", diff)
		}
		if migrations[0].Name != "create_presets" || migrations[1].Name != "index_presets_updated" {
			t.Errorf("unexpected names %q, %q", migrations[0].Name, migrations[1].Name)
		}
		for _, m := range migrations {
			if m.Up == "" || m.Down == "" {
				t.Errorf("migration %d is missing a direction", m.Version)
			}
		}
	})

	t.Run("up applies and logs pending migrations once", func(t *testing.T) {
		m, db, logs := newMigrator(t)

		applied, err := m.Up()
		if err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if diff := cmp.Diff([]int{0, 1}, applied); diff != "" {
			t.Errorf("applied mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(logs.String(), "applied migration") || !strings.Contains(logs.String(), "create_presets") {
			t.Errorf("expected applied versions in the log, got %q", logs.String())
		}

		if _, err := db.Exec("SELECT 1 FROM presets LIMIT 1"); err != nil {
			t.Errorf("presets table should exist after migrations: %v", err)
		}

		again, err := m.Up()
		if err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}
		if len(again) != 0 {
			t.Errorf("expected nothing to apply, got %v", again)
		}

		recorded, err := m.Applied()
		if err != nil {
			t.Fatalf("failed to list applied migrations: %v", err)
		}
		if len(recorded) != 2 || recorded[1].Name != "index_presets_updated" || recorded[1].AppliedAt.IsZero() {
			t.Errorf("unexpected applied rows %+v", recorded)
		}
	})

	t.Run("rollback reverts the latest migration", func(t *testing.T) {
		m, db, logs := newMigrator(t)
		if _, err := m.Up(); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		v, err := m.Rollback()
		if err != nil {
			t.Fatalf("failed to roll back: %v", err)
		}
		if v != 1 {
			t.Errorf("expected version 1 rolled back, got %d", v)
		}
		if !strings.Contains(logs.String(), "rolled back migration") {
			t.Errorf("expected rollback in the log, got %q", logs.String())
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'idx_presets_updated_at'").Scan(&count); err != nil {
			t.Fatalf("failed to query schema: %v", err)
		}
		if count != 0 {
			t.Error("expected the updated_at index to be dropped")
		}
	})

	t.Run("rollback to a target", func(t *testing.T) {
		m, db, _ := newMigrator(t)
		if _, err := m.Up(); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		reverted, err := m.RollbackTo(0)
		if err != nil {
			t.Fatalf("failed to roll back: %v", err)
		}
		if diff := cmp.Diff([]int{1}, reverted); diff != "" {
			t.Errorf("reverted mismatch (-want +got):\n%s", diff)
		}

		if reverted, err = m.RollbackTo(0); err != nil || len(reverted) != 0 {
			t.Errorf("expected no-op at the target, got %v, %v", reverted, err)
		}

		if _, err := m.RollbackTo(7); !errors.Is(err, ErrUnknownMigration) {
			t.Errorf("expected ErrUnknownMigration, got %v", err)
		}

		if reverted, err = m.RollbackTo(-1); err != nil {
			t.Fatalf("failed to roll back everything: %v", err)
		}
		if diff := cmp.Diff([]int{0}, reverted); diff != "" {
			t.Errorf("reverted mismatch (-want +got):\n%s", diff)
		}
		if _, err := db.Exec("SELECT 1 FROM presets"); err == nil {
			t.Error("expected presets table to be dropped")
		}
	})

	t.Run("rollback with nothing applied", func(t *testing.T) {
		m, _, _ := newMigrator(t)

		if _, err := m.Rollback(); !errors.Is(err, ErrNoMigrations) {
			t.Errorf("expected ErrNoMigrations, got %v", err)
		}
		if _, err := m.RollbackTo(-1); !errors.Is(err, ErrNoMigrations) {
			t.Errorf("expected ErrNoMigrations, got %v", err)
		}
	})
}

func TestStatements(t *testing.T) {
	got := statements("-- header\nCREATE TABLE t (id INTEGER); -- trailing\n\nINSERT INTO t VALUES (1);\n;")
	want := []string{"CREATE TABLE t (id INTEGER)", "INSERT INTO t VALUES (1)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDatabase(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := t.TempDir() + "/nested/dir/presets.db"
		db, err := NewDatabase(DatabaseConfig{Path: path, MaxOpenConns: 4, BusyTimeoutMS: 250})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if got := db.Stats().MaxOpenConnections; got != 4 {
			t.Errorf("expected 4 open connections, got %d", got)
		}

		var timeout int
		if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("failed to read busy_timeout: %v", err)
		}
		if timeout != 250 {
			t.Errorf("expected busy_timeout 250, got %d", timeout)
		}
	})

	t.Run("pins memory databases to one connection", func(t *testing.T) {
		db, err := NewDatabase(DatabaseConfig{Path: MemoryDatabase, MaxOpenConns: 8})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if got := db.Stats().MaxOpenConnections; got != 1 {
			t.Errorf("expected 1 open connection, got %d", got)
		}
	})

	t.Run("rejects an empty path", func(t *testing.T) {
		if _, err := NewDatabase(DatabaseConfig{}); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}
