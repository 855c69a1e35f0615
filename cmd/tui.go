package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/presets"
	"github.com/desertthunder/lacery/internal/shared"
	"github.com/desertthunder/lacery/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// AutosavePreset is the preset the TUI writes while editing.
const AutosavePreset = "autosave"

// TUI launches the interactive terminal UI over the demo scene.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return err
	}
	shared.SetLogLevel(fileLogger, level)
	r.SetLogger(fileLogger)

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.close()

	l, s, err := r.scene()
	if err != nil {
		return err
	}

	if name := cmd.String("preset"); name != "" {
		if err := store.Apply(name, s); err != nil {
			return suggest(store, name, err)
		}
		l.Update()
	}

	saver := newAutosaver(store, l, s, r.config.UI.AutosavePerSecond)

	model := ui.NewModel(l, ui.Options{
		Title:   "lacery",
		Palette: ui.PaletteFor(r.config.UI.DarkMode),
		OnEdit:  saver.onEdit,
		Presets: &presetSource{store: store, scene: s},
		Logger:  shared.WithLogger(r.logger, "component", "ui"),
	})
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if err := saver.flush(); err != nil {
		r.logger.Warn("final autosave failed", "error", err)
	}
	return nil
}

// presetSource adapts a [presets.Store] to the panel's preset picker.
type presetSource struct {
	store *presets.Store
	scene *Scene
}

func (p *presetSource) Names() ([]string, error) {
	all, err := p.store.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(all))
	for i, preset := range all {
		names[i] = preset.Name
	}
	return names, nil
}

func (p *presetSource) Load(name string) error {
	return p.store.Apply(name, p.scene)
}

// autosaver writes the scene to [AutosavePreset] at most perSecond times per second.
//
// Values are captured when the edit happens and written from the returned command.
type autosaver struct {
	store   *presets.Store
	lace    *lace.Lace
	scene   *Scene
	limiter *rate.Limiter
	dirty   bool
}

func newAutosaver(store *presets.Store, l *lace.Lace, s *Scene, perSecond float64) *autosaver {
	a := &autosaver{store: store, lace: l, scene: s}
	if perSecond > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return a
}

func (a *autosaver) onEdit() tea.Cmd {
	if a.limiter == nil {
		return nil
	}
	if !a.limiter.Allow() {
		a.dirty = true
		return nil
	}
	a.dirty = false

	keys := presets.Keys(a.lace, a.scene)
	snapshot := presets.Capture(a.scene, keys)
	return func() tea.Msg {
		if _, err := a.store.Save(AutosavePreset, snapshot, keys); err != nil {
			return ui.StatusMsg{Err: fmt.Errorf("autosave failed: %w", err)}
		}
		return ui.StatusMsg{Text: "autosaved"}
	}
}

// flush saves edits the limiter skipped.
func (a *autosaver) flush() error {
	if a.limiter == nil || !a.dirty {
		return nil
	}
	a.dirty = false
	_, err := a.store.Save(AutosavePreset, a.scene, presets.Keys(a.lace, a.scene))
	return err
}
