// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"slices"
	"testing"

	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/shared"
)

// Recorder is a bound [lace.Element] that counts refreshes and remembers applied sizes.
type Recorder struct {
	lace.Base
	obj     any
	keys    []string
	Updates int
	Sizes   []lace.Size
}

func NewRecorder(label string, obj any, keys ...string) *Recorder {
	return &Recorder{Base: lace.NewBase(label, lace.DisplayBlock), obj: obj, keys: keys}
}

func (r *Recorder) Obj() any            { return r.obj }
func (r *Recorder) Keys() []string      { return slices.Clone(r.keys) }
func (r *Recorder) Update()             { r.Updates++ }
func (r *Recorder) SetSize(s lace.Size) { r.Sizes = append(r.Sizes, s) }

// Edit writes v under key and announces the change, like a user edit.
func (r *Recorder) Edit(key string, v any) error {
	if err := binding.Set(r.obj, key, v); err != nil {
		return err
	}
	r.Changed()
	return nil
}

// NewDatabase opens an in-memory SQLite database with migrations applied, closed on cleanup.
func NewDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.DatabaseConfig{Path: shared.MemoryDatabase})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := shared.NewMigrator(db, nil)
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	if _, err := m.Up(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
