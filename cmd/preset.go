package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/formatter"
	"github.com/desertthunder/lacery/internal/presets"
	"github.com/desertthunder/lacery/internal/shared"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// presetSummary is the JSON shape of one listed preset.
type presetSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Keys      []string  `json:"keys"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresetList prints every saved preset.
func (r *Runner) PresetList(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.close()

	all, err := store.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		summaries := make([]presetSummary, 0, len(all))
		for _, p := range all {
			summaries = append(summaries, presetSummary{ID: p.ID, Name: p.Name, Keys: p.Keys(), UpdatedAt: p.UpdatedAt})
		}
		return r.writeJSON(summaries, cmd.Bool("pretty"))
	}

	if len(all) == 0 {
		return r.writePlain("No presets saved\n")
	}

	r.writePlainHeader(fmt.Sprintf("Presets (%d)", len(all)))
	for _, p := range all {
		r.writePlain("  %-20s %2d values  updated %s\n", p.Name, len(p.Values), p.UpdatedAt.Format(time.DateTime))
	}
	return nil
}

// PresetSave captures the scene, optionally seeded from another preset and --set overrides, under a name.
func (r *Runner) PresetSave(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: preset name", shared.ErrMissingArgument)
	}
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.close()

	l, s, err := r.scene()
	if err != nil {
		return err
	}

	if from := cmd.String("from"); from != "" {
		if err := store.Apply(from, s); err != nil {
			return suggest(store, from, err)
		}
	}

	for _, kv := range cmd.StringSlice("set") {
		if err := assign(s, kv); err != nil {
			return err
		}
	}
	l.Update()

	p, err := store.Save(name, s, presets.Keys(l, s))
	if err != nil {
		return err
	}

	r.logger.Debug("preset saved", "name", p.Name, "id", p.ID)
	return r.writePlain("✓ Saved preset %s (%d values)\n", p.Name, len(p.Values))
}

// PresetLoad applies a preset to a fresh scene and prints the resulting panel.
func (r *Runner) PresetLoad(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: preset name", shared.ErrMissingArgument)
	}
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.close()

	l, s, err := r.scene()
	if err != nil {
		return err
	}

	if err := store.Apply(name, s); err != nil {
		return suggest(store, name, err)
	}
	l.Update()

	return formatter.Write(r.output, cmd.String("format"), formatter.Snapshot(l))
}

// PresetDelete removes a preset.
func (r *Runner) PresetDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: preset name", shared.ErrMissingArgument)
	}
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.close()

	if err := store.Delete(name); err != nil {
		return suggest(store, name, err)
	}

	return r.writePlain("✓ Deleted preset %s\n", name)
}

// suggest decorates a preset-not-found error with close matches.
func suggest(store *presets.Store, name string, err error) error {
	if !errors.Is(err, shared.ErrPresetNotFound) {
		return err
	}
	names, serr := store.Suggest(name)
	if serr != nil || len(names) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(names, ", "))
}

// assign applies one key=value override to obj. Values for non-string fields are read as YAML
// scalars, so numbers and booleans keep their types.
func assign(obj any, kv string) error {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("%w: expected key=value, got %q", shared.ErrInvalidArgument, kv)
	}

	cur, ok := binding.Get(obj, key)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownKey, key)
	}

	var v any = raw
	if _, isString := cur.(string); !isString {
		var decoded any
		if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil || decoded == nil {
			return fmt.Errorf("%w: cannot read %q for %s", shared.ErrInvalidArgument, raw, key)
		}
		v = decoded
	}

	if err := binding.Set(obj, key, v); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}
	return nil
}
