package elements

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
)

// NumberOptions configures a [Number].
type NumberOptions struct {
	Help string
	// Step is the increment used by page up/down. Defaults to 1.
	Step float64
}

// Number is a numeric text field. Text that does not start with a number stores zero.
type Number struct {
	field
	step  float64
	input textinput.Model
}

func NewNumber(label string, obj any, key string, opts NumberOptions) *Number {
	step := opts.Step
	if step <= 0 {
		step = 1
	}
	n := &Number{field: newField(label, lace.DisplayDefault, obj, opts.Help, key), step: step}
	n.input = newInput(binding.String(obj, key), inputWidth(n.size))
	return n
}

func (n *Number) Kind() string   { return "number" }
func (n *Number) Text() string   { return n.input.Value() }
func (n *Number) Value() float64 { return binding.Float(n.obj, n.keys[0]) }
func (n *Number) Step() float64  { return n.step }

func (n *Number) SetSize(s lace.Size) {
	n.size = s
	n.input.Width = inputWidth(s)
}

// SetText replaces the field text as if typed.
func (n *Number) SetText(s string) {
	n.input.SetValue(s)
	n.commit()
}

// Increment moves the value by dir steps.
func (n *Number) Increment(dir int) {
	n.input.SetValue(formatNumber(n.Value() + float64(dir)*n.step))
	n.commit()
}

func (n *Number) commit() {
	_ = binding.Set(n.obj, n.keys[0], parseNumber(n.input.Value()))
	n.Changed()
}

func (n *Number) Update() { n.input.SetValue(binding.String(n.obj, n.keys[0])) }

func (n *Number) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "pgup":
		n.Increment(1)
		return true, nil
	case "pgdown":
		n.Increment(-1)
		return true, nil
	}
	return editInput(&n.input, msg, false, n.commit)
}

func (n *Number) Render(ctx RenderContext) string {
	return ctx.row(n.Label(), inputView(ctx, n.input), n.help)
}
