package elements

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/shared"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureOptions configures a [Texture].
type TextureOptions struct {
	// Size is the preview edge in pixels. Defaults to 80.
	Size             int
	OnTextureAdded   func()
	OnTextureRemoved func()
	Logger           *log.Logger
}

// TextureInfo describes decoded image bytes.
type TextureInfo struct {
	Format string
	Width  int
	Height int
	Bytes  int
}

// TextureLoadedMsg carries the result of [Texture.Load] back into the program.
type TextureLoadedMsg struct {
	Target *Texture
	Path   string
	Data   []byte
	Info   TextureInfo
	Err    error
}

// Texture holds encoded image bytes under its key. Activating it loads a file when empty and
// clears it otherwise.
type Texture struct {
	field
	previewSize int
	onAdded     func()
	onRemoved   func()
	logger      *log.Logger

	has       bool
	info      TextureInfo
	prompting bool
	path      textinput.Model
}

func NewTexture(label string, obj any, key string, opts TextureOptions) *Texture {
	size := opts.Size
	if size <= 0 {
		size = 80
	}
	t := &Texture{
		field:       newField(label, lace.DisplayDefault, obj, "", key),
		previewSize: size,
		onAdded:     opts.OnTextureAdded,
		onRemoved:   opts.OnTextureRemoved,
		logger:      loggerOr(opts.Logger),
		path:        newInput("", 32),
	}
	t.path.Placeholder = "path/to/image.png"
	t.refresh()
	return t
}

func (t *Texture) Kind() string      { return "texture" }
func (t *Texture) HasTexture() bool  { return t.has }
func (t *Texture) Info() TextureInfo { return t.info }
func (t *Texture) PreviewSize() int  { return t.previewSize }
func (t *Texture) Prompting() bool   { return t.prompting }

// DecodeInfo reads the header of encoded image bytes.
func DecodeInfo(data []byte) (TextureInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return TextureInfo{}, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	return TextureInfo{Format: format, Width: cfg.Width, Height: cfg.Height, Bytes: len(data)}, nil
}

// Load reads and decodes the file at path off the update loop. The result arrives as a
// [TextureLoadedMsg] to be passed to [Texture.Apply].
func (t *Texture) Load(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return TextureLoadedMsg{Target: t, Path: path, Err: err}
		}
		info, err := DecodeInfo(data)
		return TextureLoadedMsg{Target: t, Path: path, Data: data, Info: info, Err: err}
	}
}

// Apply stores a loaded texture. Failed loads are logged and leave the host object untouched.
func (t *Texture) Apply(msg TextureLoadedMsg) {
	if msg.Target != t {
		return
	}
	if msg.Err != nil {
		t.logger.Warn("error while loading image file", "label", t.Label(), "path", msg.Path, "error", msg.Err)
		return
	}
	t.store(msg.Data)
}

// SetData decodes data and stores it, as if loaded from a file.
func (t *Texture) SetData(data []byte) error {
	if _, err := DecodeInfo(data); err != nil {
		return err
	}
	t.store(data)
	return nil
}

func (t *Texture) store(data []byte) {
	_ = binding.Set(t.obj, t.keys[0], data)
	t.refresh()
	t.Changed()
	if t.onAdded != nil {
		t.onAdded()
	}
}

// Remove clears the stored texture. No-op when empty.
func (t *Texture) Remove() {
	if !t.has {
		return
	}
	_ = binding.Set(t.obj, t.keys[0], nil)
	t.refresh()
	t.Changed()
	if t.onRemoved != nil {
		t.onRemoved()
	}
}

func (t *Texture) refresh() {
	data := binding.Bytes(t.obj, t.keys[0])
	t.has = len(data) > 0
	t.info = TextureInfo{}
	if t.has {
		if info, err := DecodeInfo(data); err == nil {
			t.info = info
		}
	}
}

func (t *Texture) Update() { t.refresh() }

func (t *Texture) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if t.prompting {
		switch msg.String() {
		case "esc":
			t.prompting = false
			return true, nil
		case "enter":
			t.prompting = false
			path := t.path.Value()
			t.path.SetValue("")
			if path == "" {
				return true, nil
			}
			return true, t.Load(path)
		}
		return editInput(&t.path, msg, true, func() {})
	}

	switch msg.String() {
	case "enter", " ":
		if t.has {
			t.Remove()
			return true, nil
		}
		t.prompting = true
		return true, nil
	}
	return false, nil
}

func (t *Texture) Render(ctx RenderContext) string {
	th := ctx.theme()
	if t.prompting {
		return ctx.row(t.Label(), th.Accent.Render("load: ")+t.path.View(), "")
	}

	cell := th.Muted.Render("[ + " + t.Label() + " ]")
	if t.has {
		if t.info.Format != "" {
			cell = th.Value.Render(fmt.Sprintf("[ %s %d×%d ]", t.info.Format, t.info.Width, t.info.Height))
		} else {
			cell = th.Warn.Render(fmt.Sprintf("[ %d bytes ]", len(binding.Bytes(t.obj, t.keys[0]))))
		}
		if ctx.Focused {
			cell += th.Help.Render(" enter to remove")
		}
	} else if ctx.Focused {
		cell += th.Help.Render(" enter to load")
	}
	return ctx.row(t.Label(), cell, "")
}
