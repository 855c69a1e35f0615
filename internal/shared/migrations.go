package shared

import (
	"cmp"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migration is one versioned change to the preset schema, read from a pair of
// NNNN_name_up.sql and NNNN_name_down.sql files.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AppliedMigration is a row of schema_migrations.
type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// Migrator applies and rolls back the embedded preset schema.
type Migrator struct {
	db         *sql.DB
	logger     *log.Logger
	migrations []Migration
}

// NewMigrator loads the embedded migrations and makes sure schema_migrations exists. A nil
// logger discards output.
func NewMigrator(db *sql.DB, logger *log.Logger) (*Migrator, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	return &Migrator{db: db, logger: logger, migrations: migrations}, nil
}

// Migrations returns every known migration in version order.
func (m *Migrator) Migrations() []Migration { return slices.Clone(m.migrations) }

// Up applies every pending migration in version order and returns the applied versions.
// Running it on an up-to-date database applies nothing.
func (m *Migrator) Up() ([]int, error) {
	applied, err := m.appliedSet()
	if err != nil {
		return nil, err
	}

	var done []int
	for _, mg := range m.migrations {
		if applied[mg.Version] {
			continue
		}
		if err := m.apply(mg); err != nil {
			return done, fmt.Errorf("failed to apply migration %d: %w", mg.Version, err)
		}
		m.logger.Info("applied migration", "version", mg.Version, "name", mg.Name)
		done = append(done, mg.Version)
	}

	if len(done) == 0 {
		m.logger.Debug("preset schema up to date")
	}
	return done, nil
}

// Rollback reverts the most recently applied migration and returns its version.
func (m *Migrator) Rollback() (int, error) {
	applied, err := m.Applied()
	if err != nil {
		return 0, err
	}
	if len(applied) == 0 {
		return 0, ErrNoMigrations
	}

	latest := applied[len(applied)-1].Version
	if err := m.revertVersion(latest); err != nil {
		return 0, err
	}
	return latest, nil
}

// RollbackTo reverts every applied migration newer than target, newest first, and returns the
// reverted versions. A negative target reverts everything. Targets that are not applied
// migrations are rejected.
func (m *Migrator) RollbackTo(target int) ([]int, error) {
	applied, err := m.Applied()
	if err != nil {
		return nil, err
	}
	if len(applied) == 0 {
		return nil, ErrNoMigrations
	}
	if target >= 0 && !slices.ContainsFunc(applied, func(a AppliedMigration) bool { return a.Version == target }) {
		return nil, fmt.Errorf("%w: %d is not applied", ErrUnknownMigration, target)
	}

	var reverted []int
	for _, a := range slices.Backward(applied) {
		if a.Version <= target {
			break
		}
		if err := m.revertVersion(a.Version); err != nil {
			return reverted, err
		}
		reverted = append(reverted, a.Version)
	}
	return reverted, nil
}

// Applied lists the recorded migrations in version order.
func (m *Migrator) Applied() ([]AppliedMigration, error) {
	rows, err := m.db.Query("SELECT version, name, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var a AppliedMigration
		if err := rows.Scan(&a.Version, &a.Name, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		applied = append(applied, a)
	}
	return applied, rows.Err()
}

func (m *Migrator) appliedSet() (map[int]bool, error) {
	applied, err := m.Applied()
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(applied))
	for _, a := range applied {
		set[a.Version] = true
	}
	return set, nil
}

func (m *Migrator) revertVersion(version int) error {
	i := slices.IndexFunc(m.migrations, func(mg Migration) bool { return mg.Version == version })
	if i < 0 {
		return fmt.Errorf("%w: %d has no down migration", ErrUnknownMigration, version)
	}

	mg := m.migrations[i]
	if err := m.revert(mg); err != nil {
		return fmt.Errorf("failed to roll back migration %d: %w", version, err)
	}
	m.logger.Info("rolled back migration", "version", mg.Version, "name", mg.Name)
	return nil
}

func (m *Migrator) apply(mg Migration) error {
	return m.inTx(mg.Up, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", mg.Version, mg.Name)
}

func (m *Migrator) revert(mg Migration) error {
	return m.inTx(mg.Down, "DELETE FROM schema_migrations WHERE version = ?", mg.Version)
}

// inTx runs script and the bookkeeping statement in one transaction.
func (m *Migrator) inTx(script, record string, args ...any) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements(script) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}
	if _, err := tx.Exec(record, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// loadMigrations pairs the embedded up and down files by version.
func loadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		file := entry.Name()
		stem, ok := strings.CutSuffix(file, ".sql")
		if entry.IsDir() || !ok {
			continue
		}

		// 0000_create_presets_up
		prefix, rest, ok := strings.Cut(stem, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		content, err := migrationFiles.ReadFile(path.Join("sql", file))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		mg := byVersion[version]
		if mg == nil {
			mg = &Migration{Version: version}
			byVersion[version] = mg
		}
		if name, ok := strings.CutSuffix(rest, "_up"); ok {
			mg.Name, mg.Up = name, string(content)
		} else if name, ok := strings.CutSuffix(rest, "_down"); ok {
			mg.Name, mg.Down = name, string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mg := range byVersion {
		if mg.Up == "" || mg.Down == "" {
			return nil, fmt.Errorf("incomplete migration for version %d", mg.Version)
		}
		migrations = append(migrations, *mg)
	}
	slices.SortFunc(migrations, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return migrations, nil
}

// statements splits a migration script on semicolons, dropping "--" comments and blank statements.
func statements(script string) []string {
	var b strings.Builder
	for line := range strings.Lines(script) {
		if before, _, found := strings.Cut(line, "--"); found {
			line = before + "\n"
		}
		b.WriteString(line)
	}

	var out []string
	for stmt := range strings.SplitSeq(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
