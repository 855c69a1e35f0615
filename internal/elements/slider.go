package elements

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
)

// SliderOptions configures a [Slider]. A zero range means 0..100 and a zero step means 1.
type SliderOptions struct {
	Help string
	Min  float64
	Max  float64
	Step float64
}

// Slider picks a number from a closed range.
type Slider struct {
	field
	min, max, step float64
}

func NewSlider(label string, obj any, key string, opts SliderOptions) *Slider {
	s := &Slider{
		field: newField(label, lace.DisplayDefault, obj, opts.Help, key),
		min:   opts.Min,
		max:   opts.Max,
		step:  opts.Step,
	}
	if s.min == 0 && s.max == 0 {
		s.max = 100
	}
	if s.step <= 0 {
		s.step = 1
	}
	return s
}

func (s *Slider) Kind() string   { return "slider" }
func (s *Slider) Value() float64 { return binding.Float(s.obj, s.keys[0]) }
func (s *Slider) Min() float64   { return s.min }
func (s *Slider) Max() float64   { return s.max }
func (s *Slider) Step() float64  { return s.step }

// SetMin moves the lower bound. The stored value is left alone.
func (s *Slider) SetMin(v float64) { s.min = v }

// SetMax moves the upper bound. The stored value is left alone.
func (s *Slider) SetMax(v float64) { s.max = v }

// SetValue stores v clamped to the range, as if dragged there.
func (s *Slider) SetValue(v float64) {
	_ = binding.Set(s.obj, s.keys[0], s.clamp(v))
	s.Changed()
}

// Nudge moves the value by dir steps.
func (s *Slider) Nudge(dir int) {
	s.SetValue(s.Value() + float64(dir)*s.step)
}

// clamp limits v to the range. NaN falls to the lower bound.
func (s *Slider) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.min
	}
	return max(s.min, min(s.max, v))
}

// Slider reads the host object on every render, so there is nothing to refresh.
func (s *Slider) Update() {}

func (s *Slider) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		s.Nudge(-1)
	case "right", "l":
		s.Nudge(1)
	case "pgdown":
		s.Nudge(-10)
	case "pgup":
		s.Nudge(10)
	case "home":
		s.SetValue(s.min)
	case "end":
		s.SetValue(s.max)
	default:
		return false, nil
	}
	return true, nil
}

func (s *Slider) Render(ctx RenderContext) string {
	width := inputWidth(s.size)
	v := s.clamp(s.Value())

	pos := 0
	if s.max > s.min {
		pos = int((v - s.min) / (s.max - s.min) * float64(width-1))
	}
	pos = max(0, min(width-1, pos))

	th := ctx.theme()
	track := th.Accent.Render(strings.Repeat("━", pos)) + th.Focused.Render("●") +
		th.Muted.Render(strings.Repeat("─", width-1-pos))
	return ctx.row(s.Label(), track+" "+th.Value.Render(formatNumber(s.Value())), s.help)
}
