package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lacery/internal/elements"
)

// Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// Palette is a simple stylesheet built with named [lipgloss.Style] fields.
//
// It styles the frame around the controls and derives the [elements.Theme] the controls
// render with.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	theme *elements.Theme
}

var _ Painter = (*Palette)(nil)

// NewPalette builds a palette from title, success, error, warning and help colors on top of
// theme. A nil theme means [elements.DefaultTheme].
func NewPalette(t, s, e, w, h string, theme *elements.Theme) *Palette {
	if theme == nil {
		theme = elements.DefaultTheme()
	}
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		theme: theme,
	}
}

// LightPalette is the default palette.
func LightPalette() *Palette {
	return NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262", elements.DefaultTheme())
}

// DarkPalette suits dark terminal backgrounds.
func DarkPalette() *Palette {
	theme := &elements.Theme{
		Label:   NewStyle("#cdd6f4"),
		Focused: NewBold("#89b4fa"),
		Value:   NewStyle("#a6e3a1"),
		Help:    NewEm("#a6adc8"),
		Muted:   NewStyle("#7f849c"),
		Accent:  NewStyle("#89b4fa"),
		Warn:    NewStyle("#fab387"),
		Divider: NewStyle("#585b70"),
	}
	return NewPalette("#89b4fa", "#a6e3a1", "#f38ba8", "#fab387", "#a6adc8", theme)
}

// PaletteFor picks the dark or light palette.
func PaletteFor(dark bool) *Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

// Theme returns the control theme of the palette.
func (p *Palette) Theme() *elements.Theme { return p.theme }

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
