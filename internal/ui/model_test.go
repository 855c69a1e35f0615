package ui

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/elements"
	"github.com/desertthunder/lacery/internal/lace"
	th "github.com/desertthunder/lacery/internal/testing"
	"github.com/google/go-cmp/cmp"
)

type scene struct {
	Exposure float64 `lace:"exposure"`
	Enabled  bool    `lace:"enabled"`
	Speed    float64 `lace:"speed"`
	Title    string  `lace:"title"`
	Backdrop []byte  `lace:"backdrop"`
}

type panel struct {
	lace     *lace.Lace
	obj      *scene
	number   *elements.Number
	folder   *lace.Folder
	boolean  *elements.Boolean
	tab      *lace.Tab
	slider   *elements.Slider
	text     *elements.Text
	texture  *elements.Texture
	recorder *th.Recorder
}

func newPanel() *panel {
	p := &panel{obj: &scene{Exposure: 1, Title: "intro"}}
	p.lace = lace.New(lace.Options{})

	p.number = elements.NewNumber("Exposure", p.obj, "exposure", elements.NumberOptions{})
	p.lace.Add(p.number)

	p.folder = p.lace.AddFolder("Look", lace.FolderOptions{})
	p.boolean = elements.NewBoolean("Enabled", p.obj, "enabled", elements.BooleanOptions{})
	p.folder.Add(p.boolean)

	p.tab = p.lace.AddTab(lace.TabOptions{})
	p.slider = elements.NewSlider("Speed", p.obj, "speed", elements.SliderOptions{})
	p.tab.AddTab("Motion", "").Add(p.slider)
	p.text = elements.NewText("Title", p.obj, "title", elements.TextOptions{})
	p.texture = elements.NewTexture("Backdrop", p.obj, "backdrop", elements.TextureOptions{})
	words := p.tab.AddTab("Words", "")
	words.Add(p.text)
	words.Add(p.texture)

	p.lace.Add(elements.NewLabel("read only", elements.LabelOptions{}))
	p.recorder = th.NewRecorder("Recorder", p.obj, "exposure")
	p.lace.Add(p.recorder)
	return p
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInjectStyles(t *testing.T) {
	first := LightPalette()
	if !InjectStyles("test-inject", first) {
		t.Fatal("first injection should register")
	}
	if InjectStyles("test-inject", DarkPalette()) {
		t.Error("second injection with the same id should be a no-op")
	}

	got, ok := Styles("test-inject")
	if !ok || got != first {
		t.Error("expected the first palette to stay registered")
	}
	if _, ok := Styles("test-missing"); ok {
		t.Error("unknown ids have no styles")
	}
}

func TestPalette(t *testing.T) {
	if PaletteFor(true).Theme() == PaletteFor(false).Theme() {
		t.Error("dark and light palettes should carry distinct themes")
	}
	if NewPalette("#000", "#000", "#000", "#000", "#000", nil).Theme() == nil {
		t.Error("nil theme should fall back to the default theme")
	}
}

func TestFocus(t *testing.T) {
	t.Run("starts on the first interactive control", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-focus"})
		if m.Focused() != p.number {
			t.Fatalf("expected number focused, got %v", m.Focused())
		}
	})

	t.Run("moves through visible targets and clamps", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-focus"})

		send(m, "down")
		if m.Focused() != p.folder {
			t.Fatalf("expected folder header focused, got %v", m.Focused())
		}
		send(m, "down")
		if m.Focused() != p.folder {
			t.Error("closed folder and unshown tabs leave nothing below, focus should stay")
		}
		send(m, "up", "up")
		if m.Focused() != p.number {
			t.Error("expected focus clamped at the first target")
		}
	})

	t.Run("folders open, close and collapse from inside", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-focus"})

		send(m, "down", "o")
		if !p.folder.Open() {
			t.Fatal("o on a folder header should open it")
		}
		send(m, "down")
		if m.Focused() != p.boolean {
			t.Fatalf("expected boolean inside the open folder, got %v", m.Focused())
		}

		send(m, "o")
		if p.folder.Open() || m.Focused() != p.folder {
			t.Error("o inside a folder should collapse it and focus its header")
		}

		send(m, "enter")
		if !p.folder.Open() {
			t.Error("enter on a folder header should toggle it")
		}
	})

	t.Run("tab shows the next panel and focuses into it", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-focus"})

		send(m, "tab")
		if p.tab.Active() != "Motion" || m.Focused() != p.slider {
			t.Fatalf("expected Motion shown with slider focused, got %q / %v", p.tab.Active(), m.Focused())
		}
		send(m, "tab")
		if p.tab.Active() != "Words" || m.Focused() != p.text {
			t.Fatalf("expected Words shown with text focused, got %q / %v", p.tab.Active(), m.Focused())
		}
		send(m, "]")
		if p.tab.Active() != "Words" {
			t.Error("] typed into a text field should not switch tabs")
		}
		send(m, "down", "]")
		if p.tab.Active() != "Motion" {
			t.Errorf("expected ] to wrap to Motion from the texture, got %q", p.tab.Active())
		}
	})

	t.Run("hidden controls lose focus", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-focus"})

		p.lace.Hide(p.number)
		send(m, "x")
		if m.Focused() != p.folder {
			t.Errorf("expected focus to fall back to the folder, got %v", m.Focused())
		}
		if strings.Contains(m.View(), "Exposure") {
			t.Error("hidden control should not render")
		}
	})
}

func TestRouting(t *testing.T) {
	t.Run("controls consume keys and trigger OnEdit", func(t *testing.T) {
		p := newPanel()
		edits := 0
		m := NewModel(p.lace, Options{StyleID: "test-routing", OnEdit: func() tea.Cmd {
			edits++
			return nil
		}})

		send(m, "down", "o", "down", "enter")
		if !p.obj.Enabled {
			t.Error("enter should toggle the focused boolean")
		}
		if edits != 1 {
			t.Errorf("expected 1 edit, got %d", edits)
		}
	})

	t.Run("text fields swallow q", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-routing"})

		send(m, "tab", "tab", "q")
		if m.View() == "" {
			t.Fatal("q typed into a text field should not quit")
		}
		if p.obj.Title != "introq" {
			t.Errorf("expected title introq, got %q", p.obj.Title)
		}
	})

	t.Run("quit", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-routing"})

		send(m, "down")
		cmd := send(m, "q")
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
		if m.View() != "" {
			t.Error("view should be empty after quitting")
		}
	})

	t.Run("help toggles the full key list", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-routing"})

		send(m, "down")
		short := m.View()
		send(m, "?")
		if !strings.Contains(m.View(), "toggle folder") || strings.Contains(short, "toggle folder") {
			t.Error("expected folder help only in the full view")
		}
	})
}

func TestTextureLoaded(t *testing.T) {
	p := newPanel()
	edits := 0
	m := NewModel(p.lace, Options{StyleID: "test-texture", OnEdit: func() tea.Cmd {
		edits++
		return nil
	}})

	data := pngBytes(t)
	info, err := elements.DecodeInfo(data)
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}

	m.Update(elements.TextureLoadedMsg{Target: p.texture, Path: "a.png", Data: data, Info: info})
	if !bytes.Equal(p.obj.Backdrop, data) || edits != 1 {
		t.Errorf("expected texture stored with one edit, got %d bytes / %d edits", len(p.obj.Backdrop), edits)
	}

	m.Update(elements.TextureLoadedMsg{Target: p.texture, Path: "b.png", Err: errors.New("boom")})
	if m.Status().Err == nil || edits != 1 {
		t.Error("failed loads should set an error status without an edit")
	}
}

func TestView(t *testing.T) {
	p := newPanel()
	m := NewModel(p.lace, Options{Title: "Scene", StyleID: "test-view"})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(StatusMsg{Text: "saved autosave"})

	view := m.View()
	for _, want := range []string{"Scene", "Exposure", "▸ Look", "Motion", "Words", "read only", "Recorder", "saved autosave"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if strings.Contains(view, "Speed") {
		t.Error("controls of an unshown tab should not render")
	}

	send(m, "tab")
	if !strings.Contains(m.View(), "Speed") {
		t.Error("expected the shown tab's controls to render")
	}
}

type fakePresets struct {
	names  []string
	loaded []string
	obj    *scene
}

func (f *fakePresets) Names() ([]string, error) { return f.names, nil }

func (f *fakePresets) Load(name string) error {
	f.loaded = append(f.loaded, name)
	f.obj.Exposure = 7
	return nil
}

func TestPresetPicker(t *testing.T) {
	t.Run("select applies and refreshes", func(t *testing.T) {
		p := newPanel()
		src := &fakePresets{names: []string{"warm", "cold"}, obj: p.obj}
		m := NewModel(p.lace, Options{StyleID: "test-picker", Presets: src})

		send(m, "down")
		cmd := send(m, "p")
		if cmd == nil {
			t.Fatal("expected a command fetching preset names")
		}
		m.Update(cmd())
		if !m.Picking() {
			t.Fatal("expected the picker to open")
		}

		send(m, "enter")
		if m.Picking() {
			t.Error("picker should close after a choice")
		}
		if diff := cmp.Diff([]string{"warm"}, src.loaded); diff != "" {
			t.Errorf("loaded mismatch (-want +got):\n%s", diff)
		}
		if p.number.Text() != "7" {
			t.Errorf("expected panel refreshed to 7, got %q", p.number.Text())
		}
	})

	t.Run("esc closes without loading", func(t *testing.T) {
		p := newPanel()
		src := &fakePresets{names: []string{"warm"}, obj: p.obj}
		m := NewModel(p.lace, Options{StyleID: "test-picker", Presets: src})

		send(m, "down")
		m.Update(send(m, "p")())
		send(m, "esc")
		if m.Picking() || len(src.loaded) != 0 {
			t.Error("esc should close the picker without loading")
		}
	})

	t.Run("no source", func(t *testing.T) {
		p := newPanel()
		m := NewModel(p.lace, Options{StyleID: "test-picker"})

		send(m, "down")
		if cmd := send(m, "p"); cmd != nil {
			t.Error("expected no command without a preset source")
		}
		if m.Status().Text == "" {
			t.Error("expected a status explaining presets are unavailable")
		}
	})
}
