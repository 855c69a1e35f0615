package presets

import (
	"cmp"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/shared"
)

// SuggestDistance is the largest edit distance [Store.Suggest] still reports.
const SuggestDistance = 3

// Preset is a named snapshot of values keyed like the host object they were captured from.
type Preset struct {
	ID        string
	Sequence  int
	Name      string
	Values    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Keys returns the captured keys in sorted order.
func (p *Preset) Keys() []string {
	keys := make([]string, 0, len(p.Values))
	for k := range p.Values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Store reads and writes presets in the presets table.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// NewStore creates a Store over an open database with migrations applied.
func NewStore(db *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{db: db, logger: logger}
}

// Save captures keys from obj and stores them under name, replacing any preset with that name.
func (s *Store) Save(name string, obj any, keys []string) (*Preset, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: preset name", shared.ErrMissingArgument)
	}

	values := Capture(obj, keys)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrEmptyPreset, name)
	}

	data, err := shared.MarshalJSON(values, false)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preset: %w", err)
	}

	existing, err := s.Get(name)
	switch {
	case err == nil:
		return s.update(existing, values, data)
	case errors.Is(err, shared.ErrPresetNotFound):
		return s.create(name, values, data)
	default:
		return nil, err
	}
}

func (s *Store) create(name string, values map[string]any, data []byte) (*Preset, error) {
	sequence, err := nextSequence(s.db, "presets")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	p := &Preset{
		ID:        shared.GenerateID(),
		Sequence:  sequence,
		Name:      name,
		Values:    values,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO presets (id, sequence, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.Exec(query, p.ID, p.Sequence, p.Name, string(data), p.CreatedAt, p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert preset: %w", err)
	}

	s.logger.Debug("preset created", "name", name, "keys", len(values))
	return p, nil
}

func (s *Store) update(p *Preset, values map[string]any, data []byte) (*Preset, error) {
	now := time.Now()

	query := `
		UPDATE presets
		SET data = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := s.db.Exec(query, string(data), now, p.ID); err != nil {
		return nil, fmt.Errorf("failed to update preset: %w", err)
	}

	p.Values = values
	p.UpdatedAt = now
	s.logger.Debug("preset updated", "name", p.Name, "keys", len(values))
	return p, nil
}

// Get retrieves a preset by name.
func (s *Store) Get(name string) (*Preset, error) {
	query := `
		SELECT id, sequence, name, data, created_at, updated_at
		FROM presets
		WHERE name = ?
	`

	p, err := scan(s.db.QueryRow(query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPresetNotFound, name)
	}
	return p, err
}

// List returns every preset, most recently saved first.
func (s *Store) List() ([]*Preset, error) {
	query := `
		SELECT id, sequence, name, data, created_at, updated_at
		FROM presets
		ORDER BY updated_at DESC, sequence DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return presets, nil
}

// Delete removes the preset stored under name.
func (s *Store) Delete(name string) error {
	result, err := s.db.Exec("DELETE FROM presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPresetNotFound, name)
	}

	s.logger.Debug("preset deleted", "name", name)
	return nil
}

// Apply writes the values of the named preset into obj. Keys obj cannot hold are reported
// together after every other key has been written.
func (s *Store) Apply(name string, obj any) error {
	p, err := s.Get(name)
	if err != nil {
		return err
	}

	var errs []error
	for _, key := range p.Keys() {
		if err := restore(obj, key, p.Values[key]); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to apply preset %s: %w", name, errors.Join(errs...))
	}
	return nil
}

// Suggest returns stored preset names within [SuggestDistance] edits of name, closest first.
func (s *Store) Suggest(name string) ([]string, error) {
	presets, err := s.List()
	if err != nil {
		return nil, err
	}

	type match struct {
		name string
		dist int
	}

	var matches []match
	for _, p := range presets {
		if d := levenshtein.ComputeDistance(name, p.Name); d <= SuggestDistance {
			matches = append(matches, match{name: p.Name, dist: d})
		}
	}

	slices.SortFunc(matches, func(a, b match) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), cmp.Compare(a.name, b.name))
	})

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names, nil
}

// Capture reads the current value of every key obj holds. Missing keys are skipped.
func Capture(obj any, keys []string) map[string]any {
	values := make(map[string]any, len(keys))
	for _, key := range keys {
		if v, ok := binding.Get(obj, key); ok {
			values[key] = v
		}
	}
	return values
}

// Keys returns the distinct keys bound to obj by the registered leaves of l, in registry order.
func Keys(l *lace.Lace, obj any) []string {
	var keys []string
	for _, e := range l.Flatten() {
		if !e.Binds() || !binding.Same(e.Obj(), obj) {
			continue
		}
		for _, k := range e.Keys() {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// restore writes a decoded JSON value back under key. Byte fields round-trip through base64.
func restore(obj any, key string, v any) error {
	if s, ok := v.(string); ok {
		if cur, ok := binding.Get(obj, key); ok {
			if _, isBytes := cur.([]byte); isBytes {
				b, err := base64.StdEncoding.DecodeString(s)
				if err != nil {
					return fmt.Errorf("%w: %s is not base64", shared.ErrInvalidInput, key)
				}
				v = b
			}
		}
	}
	return binding.Set(obj, key, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*Preset, error) {
	var (
		p    Preset
		data string
	)

	if err := row.Scan(&p.ID, &p.Sequence, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan preset: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &p.Values); err != nil {
		return nil, fmt.Errorf("failed to decode preset %s: %w", p.Name, err)
	}

	return &p, nil
}
