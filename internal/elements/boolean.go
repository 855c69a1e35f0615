package elements

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
)

// BooleanOptions configures a [Boolean].
type BooleanOptions struct {
	Help string
}

// Boolean is a checkbox bound to a bool field.
type Boolean struct {
	field
	checked bool
}

func NewBoolean(label string, obj any, key string, opts BooleanOptions) *Boolean {
	b := &Boolean{field: newField(label, lace.DisplayBlock, obj, opts.Help, key)}
	b.checked = binding.Bool(obj, key)
	return b
}

func (b *Boolean) Kind() string  { return "boolean" }
func (b *Boolean) Checked() bool { return b.checked }

// Set checks or unchecks the box. Setting the current state is not an edit.
func (b *Boolean) Set(v bool) {
	if v == b.checked {
		return
	}
	b.checked = v
	_ = binding.Set(b.obj, b.keys[0], v)
	b.Changed()
}

// Toggle flips the box.
func (b *Boolean) Toggle() { b.Set(!b.checked) }

func (b *Boolean) Update() { b.checked = binding.Bool(b.obj, b.keys[0]) }

func (b *Boolean) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", " ", "x":
		b.Toggle()
		return true, nil
	}
	return false, nil
}

func (b *Boolean) Render(ctx RenderContext) string {
	box := "[ ]"
	if b.checked {
		box = "[x]"
	}
	return ctx.row(b.Label(), ctx.theme().Value.Render(box), b.help)
}
