package elements

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/lace"
)

const labelWidth = 16

// Control is a registry element that can draw itself.
type Control interface {
	lace.Element
	// Kind names the control flavor, e.g. "slider".
	Kind() string
	Render(ctx RenderContext) string
}

// KeyHandler is implemented by controls that accept keyboard input while focused.
type KeyHandler interface {
	// HandleKey reports whether msg was consumed and returns an optional follow-up command.
	HandleKey(msg tea.KeyMsg) (bool, tea.Cmd)
}

// Theme is the set of lipgloss styles controls render with.
type Theme struct {
	Label   lipgloss.Style
	Focused lipgloss.Style
	Value   lipgloss.Style
	Help    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Warn    lipgloss.Style
	Divider lipgloss.Style
}

// DefaultTheme returns a light theme using ANSI-safe hex colors.
func DefaultTheme() *Theme {
	return &Theme{
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4c4f69")),
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca0b0")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
		Divider: lipgloss.NewStyle().Foreground(lipgloss.Color("#bcc0cc")),
	}
}

// RenderContext carries what a control needs to draw one frame.
type RenderContext struct {
	Theme   *Theme
	Width   int
	Focused bool
}

func (c RenderContext) theme() *Theme {
	if c.Theme == nil {
		return DefaultTheme()
	}
	return c.Theme
}

func (c RenderContext) width() int {
	if c.Width <= 0 {
		return 48
	}
	return c.Width
}

// label renders a fixed-width label column, highlighted while focused.
func (c RenderContext) label(text string) string {
	style := c.theme().Label
	if c.Focused {
		style = c.theme().Focused
	}
	return style.Width(labelWidth).Render(text)
}

// row joins a label column and a value and appends help text on its own line.
func (c RenderContext) row(label, value, help string) string {
	out := lipgloss.JoinHorizontal(lipgloss.Top, c.label(label), value)
	if help != "" {
		out += "\n" + c.theme().Help.Render(help)
	}
	return out
}

// field is embedded by every control bound to a host object.
type field struct {
	lace.Base
	obj  any
	keys []string
	help string
	size lace.Size
}

func newField(label string, d lace.Display, obj any, help string, keys ...string) field {
	return field{Base: lace.NewBase(label, d), obj: obj, keys: keys, help: help}
}

func (f *field) Obj() any            { return f.obj }
func (f *field) Keys() []string      { return slices.Clone(f.keys) }
func (f *field) SetSize(s lace.Size) { f.size = s }
func (f *field) Size() lace.Size     { return f.size }
func (f *field) Help() string        { return f.help }

// static is embedded by controls that are not bound to a host object.
type static struct {
	lace.Base
	size lace.Size
}

func newStatic(label string, d lace.Display) static {
	return static{Base: lace.NewBase(label, d)}
}

func (s *static) Obj() any            { return nil }
func (s *static) Keys() []string      { return nil }
func (s *static) Update()             {}
func (s *static) SetSize(z lace.Size) { s.size = z }
func (s *static) Size() lace.Size     { return s.size }

func inputWidth(s lace.Size) int {
	switch s {
	case lace.SizeMedium:
		return 24
	case lace.SizeLarge:
		return 32
	default:
		return 16
	}
}

func loggerOr(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

// previewsFor returns previews when there is exactly one per option. A non-empty list of the
// wrong length is dropped with a warning.
func previewsFor(previews []string, options int, logger *log.Logger, label string) []string {
	if len(previews) == 0 {
		return nil
	}
	if len(previews) != options {
		loggerOr(logger).Warn("previews are not shown because the number of previews does not match the number of options",
			"label", label, "previews", len(previews), "options", options)
		return nil
	}
	return slices.Clone(previews)
}

// parseNumber reads the longest numeric prefix of s. Text without one reads as zero.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	for i := len(s); i > 0; i-- {
		v, err := strconv.ParseFloat(s[:i], 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return 0
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newInput(value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = width
	ti.SetValue(value)
	ti.Focus()
	return ti
}

// editInput forwards editing keys to in and runs commit when the text changed.
func editInput(in *textinput.Model, msg tea.KeyMsg, allowSpace bool, commit func()) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
	case tea.KeySpace:
		if !allowSpace {
			return false, nil
		}
	default:
		return false, nil
	}

	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() != before {
		commit()
	}
	return true, cmd
}

// inputView shows the live editor while focused and the plain value otherwise.
func inputView(ctx RenderContext, in textinput.Model) string {
	if ctx.Focused {
		return in.View()
	}
	return ctx.theme().Value.Render(in.Value())
}
