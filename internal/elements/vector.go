package elements

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
)

// vector edits several numeric keys of one object side by side.
type vector struct {
	field
	steps  []float64
	inputs []textinput.Model
	active int
}

func newVector(label string, obj any, help string, keys []string, steps []float64) vector {
	v := vector{field: newField(label, lace.DisplayDefault, obj, help, keys...)}
	for i, k := range keys {
		step := steps[i]
		if step <= 0 {
			step = 1
		}
		v.steps = append(v.steps, step)
		v.inputs = append(v.inputs, newInput(binding.String(obj, k), inputWidth(v.size)/2))
	}
	return v
}

// Active returns the index of the component receiving typed input.
func (v *vector) Active() int { return v.active }

// Values returns the current component values.
func (v *vector) Values() []float64 {
	out := make([]float64, len(v.keys))
	for i, k := range v.keys {
		out[i] = binding.Float(v.obj, k)
	}
	return out
}

// SetComponent replaces the text of component i as if typed.
func (v *vector) SetComponent(i int, s string) {
	if i < 0 || i >= len(v.inputs) {
		return
	}
	v.inputs[i].SetValue(s)
	v.commit(i)
}

// Increment moves component i by dir steps.
func (v *vector) Increment(i, dir int) {
	if i < 0 || i >= len(v.inputs) {
		return
	}
	next := binding.Float(v.obj, v.keys[i]) + float64(dir)*v.steps[i]
	v.inputs[i].SetValue(formatNumber(next))
	v.commit(i)
}

func (v *vector) commit(i int) {
	_ = binding.Set(v.obj, v.keys[i], parseNumber(v.inputs[i].Value()))
	v.Changed()
}

func (v *vector) SetSize(s lace.Size) {
	v.size = s
	for i := range v.inputs {
		v.inputs[i].Width = inputWidth(s) / 2
	}
}

func (v *vector) Update() {
	for i, k := range v.keys {
		v.inputs[i].SetValue(binding.String(v.obj, k))
	}
}

func (v *vector) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "shift+tab":
		v.active = (v.active + 1) % len(v.inputs)
		return true, nil
	case "pgup":
		v.Increment(v.active, 1)
		return true, nil
	case "pgdown":
		v.Increment(v.active, -1)
		return true, nil
	}
	i := v.active
	return editInput(&v.inputs[i], msg, false, func() { v.commit(i) })
}

func (v *vector) Render(ctx RenderContext) string {
	th := ctx.theme()
	parts := make([]string, len(v.inputs))
	for i, in := range v.inputs {
		if ctx.Focused && i == v.active {
			parts[i] = in.View()
			continue
		}
		parts[i] = th.Value.Render(in.Value())
	}
	return ctx.row(v.Label(), strings.Join(parts, th.Muted.Render(" · ")), v.help)
}

// Vec2Options configures a [Vec2]. Zero steps mean 1.
type Vec2Options struct {
	Help  string
	XStep float64
	YStep float64
}

// Vec2 edits two numeric keys of one object.
type Vec2 struct{ vector }

func NewVec2(label string, obj any, xKey, yKey string, opts Vec2Options) *Vec2 {
	return &Vec2{newVector(label, obj, opts.Help, []string{xKey, yKey}, []float64{opts.XStep, opts.YStep})}
}

func (v *Vec2) Kind() string { return "vec2" }

// Vec3Options configures a [Vec3]. Zero steps mean 1.
type Vec3Options struct {
	Help  string
	XStep float64
	YStep float64
	ZStep float64
}

// Vec3 edits three numeric keys of one object.
type Vec3 struct{ vector }

func NewVec3(label string, obj any, xKey, yKey, zKey string, opts Vec3Options) *Vec3 {
	return &Vec3{newVector(label, obj, opts.Help, []string{xKey, yKey, zKey}, []float64{opts.XStep, opts.YStep, opts.ZStep})}
}

func (v *Vec3) Kind() string { return "vec3" }
