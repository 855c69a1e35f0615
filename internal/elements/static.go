package elements

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lacery/internal/lace"
)

// LabelOptions configures a [Label].
type LabelOptions struct {
	// Block wraps the text to the available width.
	Block bool
	// SameLine suppresses the trailing line break.
	SameLine bool
	Bold     bool
	Italic   bool
}

// Label is a piece of static text.
type Label struct {
	static
	text string
	opts LabelOptions
}

func NewLabel(text string, opts LabelOptions) *Label {
	return &Label{static: newStatic("laceLabel", lace.DisplayDefault), text: text, opts: opts}
}

func (l *Label) Kind() string { return "label" }
func (l *Label) Text() string { return l.text }

// SetText replaces the text. Labels have no host object, so this is not an edit.
func (l *Label) SetText(s string) { l.text = s }

func (l *Label) Render(ctx RenderContext) string {
	style := ctx.theme().Label.Bold(l.opts.Bold).Italic(l.opts.Italic)
	if l.opts.Block {
		style = style.Width(ctx.width())
	}
	out := style.Render(l.text)
	if !l.opts.SameLine {
		out += "\n"
	}
	return out
}

// SeparatorOptions configures a [Separator].
type SeparatorOptions struct {
	// Width is the line weight. Widths above 1 draw a heavy rule.
	Width int
}

// Separator draws a horizontal rule.
type Separator struct {
	static
	width int
}

func NewSeparator(opts SeparatorOptions) *Separator {
	w := opts.Width
	if w <= 0 {
		w = 1
	}
	return &Separator{static: newStatic("laceSeparator", lace.DisplayDefault), width: w}
}

func (s *Separator) Kind() string { return "separator" }
func (s *Separator) Width() int   { return s.width }

func (s *Separator) Render(ctx RenderContext) string {
	rule := "─"
	if s.width > 1 {
		rule = "━"
	}
	return ctx.theme().Divider.Render(strings.Repeat(rule, ctx.width()))
}

// Custom hosts caller-provided rendering.
type Custom struct {
	static
	render func(RenderContext) string
}

func NewCustom(render func(RenderContext) string) *Custom {
	return &Custom{static: newStatic("laceCustom", lace.DisplayDefault), render: render}
}

func (c *Custom) Kind() string { return "custom" }

func (c *Custom) Render(ctx RenderContext) string {
	if c.render == nil {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(ctx.width()).Render(c.render(ctx))
}
