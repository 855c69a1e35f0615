package main

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/elements"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/presets"
	"github.com/desertthunder/lacery/internal/shared"
	tu "github.com/desertthunder/lacery/internal/testing"
	"github.com/desertthunder/lacery/internal/ui"
	"github.com/google/go-cmp/cmp"
)

func newScenePanel(t *testing.T) (*lace.Lace, *Scene) {
	t.Helper()
	s := NewScene()
	l, err := buildScene(shared.DefaultConfig(), log.New(io.Discard), s)
	if err != nil {
		t.Fatalf("failed to build scene: %v", err)
	}
	return l, s
}

func TestBuildScene(t *testing.T) {
	t.Run("binds every scene field", func(t *testing.T) {
		l, s := newScenePanel(t)

		keys := presets.Keys(l, s)
		slices.Sort(keys)
		want := []string{
			"albedo", "enabled", "exposure", "offset_x", "offset_y",
			"position_x", "position_y", "position_z", "quality", "samples", "tint", "title",
		}
		if diff := cmp.Diff(want, keys); diff != "" {
			t.Errorf("bound keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("links the exposure controls", func(t *testing.T) {
		l, s := newScenePanel(t)

		var slider *elements.Slider
		var number *elements.Number
		for _, e := range l.Flatten() {
			switch c := e.(type) {
			case *elements.Slider:
				slider = c
			case *elements.Number:
				number = c
			}
		}
		if slider == nil || number == nil {
			t.Fatal("expected exposure slider and number in the scene")
		}
		if !l.Linked(slider, number) {
			t.Error("expected slider and number to be cross-linked")
		}

		slider.SetValue(2)
		if s.Exposure != 2 || number.Text() != "2" {
			t.Errorf("expected exposure 2 in host and number, got %v / %q", s.Exposure, number.Text())
		}
	})

	t.Run("starts on the render tab with the material folder closed", func(t *testing.T) {
		l, _ := newScenePanel(t)

		for _, e := range l.Elements() {
			if tab, ok := e.(*lace.Tab); ok {
				if tab.Active() != "Render" {
					t.Errorf("expected Render tab active, got %q", tab.Active())
				}
				for _, f := range tab.Panel("Look").Elements() {
					if folder, ok := f.(*lace.Folder); ok && folder.Open() {
						t.Error("expected material folder to start closed")
					}
				}
				return
			}
		}
		t.Fatal("expected a tab container in the scene")
	})

	t.Run("reset button restores defaults", func(t *testing.T) {
		l, s := newScenePanel(t)
		s.Exposure, s.Title = 3, "changed"

		for _, e := range l.Elements() {
			if b, ok := e.(*elements.Button); ok && b.Label() == "Reset" {
				b.Click()
			}
		}

		if diff := cmp.Diff(NewScene(), s); diff != "" {
			t.Errorf("scene not reset (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects unknown sizes", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.UI.Size = "huge"

		if _, err := buildScene(config, log.New(io.Discard), NewScene()); !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestAutosaver(t *testing.T) {
	t.Run("saves the captured values", func(t *testing.T) {
		store := presets.NewStore(tu.NewDatabase(t), nil)
		l, s := newScenePanel(t)
		a := newAutosaver(store, l, s, 1)

		s.Exposure = 2.5
		cmd := a.onEdit()
		if cmd == nil {
			t.Fatal("expected a save command for the first edit")
		}

		s.Exposure = 9 // edits after the capture are not part of this save
		msg, ok := cmd().(ui.StatusMsg)
		if !ok || msg.Err != nil {
			t.Fatalf("expected a successful status message, got %#v", msg)
		}

		p, err := store.Get(AutosavePreset)
		if err != nil {
			t.Fatalf("failed to load autosave: %v", err)
		}
		if p.Values["exposure"] != 2.5 {
			t.Errorf("expected autosaved exposure 2.5, got %v", p.Values["exposure"])
		}
	})

	t.Run("throttles and flushes skipped edits", func(t *testing.T) {
		store := presets.NewStore(tu.NewDatabase(t), nil)
		l, s := newScenePanel(t)
		a := newAutosaver(store, l, s, 0.001)

		if cmd := a.onEdit(); cmd != nil {
			cmd()
		}

		s.Samples = 64
		if cmd := a.onEdit(); cmd != nil {
			t.Fatal("expected the second edit to be throttled")
		}

		if err := a.flush(); err != nil {
			t.Fatalf("flush failed: %v", err)
		}

		p, err := store.Get(AutosavePreset)
		if err != nil {
			t.Fatalf("failed to load autosave: %v", err)
		}
		if p.Values["samples"] != 64.0 {
			t.Errorf("expected flushed samples 64, got %v", p.Values["samples"])
		}
	})

	t.Run("disabled when the rate is zero", func(t *testing.T) {
		store := presets.NewStore(tu.NewDatabase(t), nil)
		l, s := newScenePanel(t)
		a := newAutosaver(store, l, s, 0)

		if cmd := a.onEdit(); cmd != nil {
			t.Error("expected no save command")
		}
		if err := a.flush(); err != nil {
			t.Errorf("expected no-op flush, got %v", err)
		}
		if _, err := store.Get(AutosavePreset); !errors.Is(err, shared.ErrPresetNotFound) {
			t.Errorf("expected no autosave, got %v", err)
		}
	})
}

func TestPresetSource(t *testing.T) {
	store := presets.NewStore(tu.NewDatabase(t), nil)
	saved := NewScene()
	saved.Quality = "final"
	if _, err := store.Save("final", saved, []string{"quality"}); err != nil {
		t.Fatalf("failed to save preset: %v", err)
	}

	s := NewScene()
	src := &presetSource{store: store, scene: s}

	names, err := src.Names()
	if err != nil {
		t.Fatalf("failed to list names: %v", err)
	}
	if diff := cmp.Diff([]string{"final"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if err := src.Load("final"); err != nil {
		t.Fatalf("failed to load preset: %v", err)
	}
	if s.Quality != "final" {
		t.Errorf("expected quality final, got %q", s.Quality)
	}
}
