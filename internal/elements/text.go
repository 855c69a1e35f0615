package elements

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
)

// TextOptions configures a [Text].
type TextOptions struct {
	Help string
}

// Text is a single-line text field bound to a string.
type Text struct {
	field
	input textinput.Model
}

func NewText(label string, obj any, key string, opts TextOptions) *Text {
	t := &Text{field: newField(label, lace.DisplayDefault, obj, opts.Help, key)}
	t.input = newInput(binding.String(obj, key), inputWidth(t.size))
	return t
}

func (t *Text) Kind() string  { return "text" }
func (t *Text) Value() string { return t.input.Value() }

func (t *Text) SetSize(s lace.Size) {
	t.size = s
	t.input.Width = inputWidth(s)
}

// SetText replaces the text as if typed.
func (t *Text) SetText(s string) {
	t.input.SetValue(s)
	t.commit()
}

func (t *Text) commit() {
	_ = binding.Set(t.obj, t.keys[0], t.input.Value())
	t.Changed()
}

func (t *Text) Update() { t.input.SetValue(binding.String(t.obj, t.keys[0])) }

func (t *Text) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	return editInput(&t.input, msg, true, t.commit)
}

func (t *Text) Render(ctx RenderContext) string {
	return ctx.row(t.Label(), inputView(ctx, t.input), t.help)
}
