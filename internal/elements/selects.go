package elements

import (
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
)

// OriginalText labels the option added for a current value missing from the option list.
const OriginalText = "Original"

// Option is one entry of a string select or button menu.
type Option struct {
	Value string
	Text  string
}

// NumberOption is one entry of a [NumberSelect].
type NumberOption struct {
	Value float64
	Text  string
}

// SelectOptions configures [TextSelect] and [NumberSelect].
type SelectOptions struct {
	Help string
	// Previews holds one image path per option, in option order. Any other count disables them.
	Previews    []string
	PreviewSize int
	Logger      *log.Logger
}

func (o SelectOptions) previewSize() int {
	if o.PreviewSize <= 0 {
		return 40
	}
	return o.PreviewSize
}

// TextSelect picks one string from a fixed list of options.
type TextSelect struct {
	field
	options     []Option
	previews    []string
	previewSize int
}

// NewTextSelect builds a select over options in the given order. When the current value is
// not among them it is appended as an extra option labelled [OriginalText].
func NewTextSelect(label string, obj any, key string, options []Option, opts SelectOptions) *TextSelect {
	s := &TextSelect{
		field:       newField(label, lace.DisplayDefault, obj, opts.Help, key),
		options:     slices.Clone(options),
		previewSize: opts.previewSize(),
	}
	current := binding.String(obj, key)
	if s.index(current) < 0 {
		s.options = append(s.options, Option{Value: current, Text: OriginalText})
	}
	s.previews = previewsFor(opts.Previews, len(s.options), opts.Logger, label)
	return s
}

func (s *TextSelect) Kind() string       { return "textSelect" }
func (s *TextSelect) Value() string      { return binding.String(s.obj, s.keys[0]) }
func (s *TextSelect) Options() []Option  { return slices.Clone(s.options) }
func (s *TextSelect) Previews() []string { return slices.Clone(s.previews) }
func (s *TextSelect) PreviewSize() int   { return s.previewSize }
func (s *TextSelect) Update()            {}
func (s *TextSelect) index(v string) int {
	return slices.IndexFunc(s.options, func(o Option) bool { return o.Value == v })
}

// Select stores value as if picked from the list. Values outside the list are rejected.
func (s *TextSelect) Select(value string) bool {
	if s.index(value) < 0 {
		return false
	}
	_ = binding.Set(s.obj, s.keys[0], value)
	s.Changed()
	return true
}

func (s *TextSelect) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	dir, ok := cycleDir(msg)
	if !ok {
		return false, nil
	}
	i := wrap(s.index(s.Value())+dir, len(s.options))
	s.Select(s.options[i].Value)
	return true, nil
}

func (s *TextSelect) Render(ctx RenderContext) string {
	i := s.index(s.Value())
	text, preview := "-", ""
	if i >= 0 {
		text = s.options[i].Text
		if s.previews != nil {
			preview = s.previews[i]
		}
	}
	return ctx.row(s.Label(), choice(ctx, text, preview), s.help)
}

// NumberSelect picks one number from a fixed list of options.
type NumberSelect struct {
	field
	options     []NumberOption
	previews    []string
	previewSize int
}

// NewNumberSelect builds a select over options in the given order. When the current value is
// not among them it is appended as an extra option labelled [OriginalText].
func NewNumberSelect(label string, obj any, key string, options []NumberOption, opts SelectOptions) *NumberSelect {
	s := &NumberSelect{
		field:       newField(label, lace.DisplayDefault, obj, opts.Help, key),
		options:     slices.Clone(options),
		previewSize: opts.previewSize(),
	}
	current := binding.Float(obj, key)
	if s.index(current) < 0 {
		s.options = append(s.options, NumberOption{Value: current, Text: OriginalText})
	}
	s.previews = previewsFor(opts.Previews, len(s.options), opts.Logger, label)
	return s
}

func (s *NumberSelect) Kind() string            { return "numberSelect" }
func (s *NumberSelect) Value() float64          { return binding.Float(s.obj, s.keys[0]) }
func (s *NumberSelect) Options() []NumberOption { return slices.Clone(s.options) }
func (s *NumberSelect) Previews() []string      { return slices.Clone(s.previews) }
func (s *NumberSelect) PreviewSize() int        { return s.previewSize }
func (s *NumberSelect) Update()                 {}
func (s *NumberSelect) index(v float64) int {
	return slices.IndexFunc(s.options, func(o NumberOption) bool { return o.Value == v })
}

// Select stores value as if picked from the list. Values outside the list are rejected.
func (s *NumberSelect) Select(value float64) bool {
	if s.index(value) < 0 {
		return false
	}
	_ = binding.Set(s.obj, s.keys[0], value)
	s.Changed()
	return true
}

func (s *NumberSelect) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	dir, ok := cycleDir(msg)
	if !ok {
		return false, nil
	}
	i := wrap(s.index(s.Value())+dir, len(s.options))
	s.Select(s.options[i].Value)
	return true, nil
}

func (s *NumberSelect) Render(ctx RenderContext) string {
	i := s.index(s.Value())
	text, preview := "-", ""
	if i >= 0 {
		text = s.options[i].Text
		if s.previews != nil {
			preview = s.previews[i]
		}
	}
	return ctx.row(s.Label(), choice(ctx, text, preview), s.help)
}

func cycleDir(msg tea.KeyMsg) (int, bool) {
	switch msg.String() {
	case "left", "h":
		return -1, true
	case "right", "l", "enter", " ":
		return 1, true
	}
	return 0, false
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func choice(ctx RenderContext, text, preview string) string {
	th := ctx.theme()
	var b strings.Builder
	if preview != "" {
		b.WriteString(th.Muted.Render("▣ " + filepath.Base(preview) + " "))
	}
	b.WriteString(th.Accent.Render("‹ "))
	b.WriteString(th.Value.Render(text))
	b.WriteString(th.Accent.Render(" ›"))
	return b.String()
}
