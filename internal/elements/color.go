package elements

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lacery/internal/binding"
	"github.com/desertthunder/lacery/internal/lace"
	"github.com/desertthunder/lacery/internal/shared"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultSwatches are offered by every [Color] unless replaced.
var DefaultSwatches = []string{"#27ae60", "#2980b9", "#8e44ad", "#16a085", "#f39c12", "#d35400", "#c0392b", "#7f8c8d"}

// ColorFormat selects how picked colors are written to the host object.
type ColorFormat int

const (
	// ColorRGB writes "rgb(r, g, b)".
	ColorRGB ColorFormat = iota
	// ColorHex writes "#rrggbb".
	ColorHex
)

// ColorOptions configures a [Color].
type ColorOptions struct {
	Format   ColorFormat
	Swatches []string
}

// Color picks a color from a row of swatches or from a typed value.
type Color struct {
	field
	format   ColorFormat
	swatches []string
	cursor   int
}

func NewColor(label string, obj any, key string, opts ColorOptions) *Color {
	swatches := opts.Swatches
	if len(swatches) == 0 {
		swatches = DefaultSwatches
	}
	c := &Color{
		field:    newField(label, lace.DisplayDefault, obj, "", key),
		format:   opts.Format,
		swatches: slices.Clone(swatches),
		cursor:   -1,
	}
	c.Update()
	return c
}

func (c *Color) Kind() string       { return "color" }
func (c *Color) Value() string      { return binding.String(c.obj, c.keys[0]) }
func (c *Color) Swatches() []string { return slices.Clone(c.swatches) }

// Hex returns the current value as "#rrggbb", or "" when it cannot be parsed.
func (c *Color) Hex() string {
	col, err := ParseColor(c.Value())
	if err != nil {
		return ""
	}
	return col.Hex()
}

// Set stores value in the configured format, as if picked.
func (c *Color) Set(value string) error {
	col, err := ParseColor(value)
	if err != nil {
		return err
	}
	_ = binding.Set(c.obj, c.keys[0], FormatColor(col, c.format))
	c.cursor = c.swatchIndex(col)
	c.Changed()
	return nil
}

// Update re-syncs the swatch cursor with the host value.
func (c *Color) Update() {
	col, err := ParseColor(c.Value())
	if err != nil {
		c.cursor = -1
		return
	}
	c.cursor = c.swatchIndex(col)
}

func (c *Color) swatchIndex(col colorful.Color) int {
	return slices.IndexFunc(c.swatches, func(s string) bool {
		sw, err := ParseColor(s)
		return err == nil && sw.Hex() == col.Hex()
	})
}

func (c *Color) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	dir, ok := cycleDir(msg)
	if !ok {
		return false, nil
	}
	next := wrap(c.cursor+dir, len(c.swatches))
	if c.cursor < 0 && dir < 0 {
		next = len(c.swatches) - 1
	}
	_ = c.Set(c.swatches[next])
	return true, nil
}

func (c *Color) Render(ctx RenderContext) string {
	th := ctx.theme()
	var b strings.Builder
	if hex := c.Hex(); hex != "" {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    "))
		b.WriteString(" ")
	}
	b.WriteString(th.Value.Render(c.Value()))

	if ctx.Focused {
		b.WriteString("  ")
		for i, s := range c.swatches {
			cell := "  "
			if i == c.cursor {
				cell = "▪▪"
			}
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(s)).Render(cell))
		}
	}
	return ctx.row(c.Label(), b.String(), c.help)
}

// ParseColor reads "#rgb", "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b, a)". Alpha is ignored.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) == 9 {
			s = s[:7]
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: color %q", shared.ErrInvalidInput, s)
		}
		return c, nil
	case strings.HasPrefix(s, "rgb"):
		open, end := strings.IndexByte(s, '('), strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return colorful.Color{}, fmt.Errorf("%w: color %q", shared.ErrInvalidInput, s)
		}
		parts := strings.Split(s[open+1:end], ",")
		if len(parts) < 3 {
			return colorful.Color{}, fmt.Errorf("%w: color %q", shared.ErrInvalidInput, s)
		}
		var rgb [3]uint8
		for i := range rgb {
			var v int
			if _, err := fmt.Sscanf(strings.TrimSpace(parts[i]), "%d", &v); err != nil || v < 0 || v > 255 {
				return colorful.Color{}, fmt.Errorf("%w: color %q", shared.ErrInvalidInput, s)
			}
			rgb[i] = uint8(v)
		}
		return colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}, nil
	default:
		return colorful.Color{}, fmt.Errorf("%w: color %q", shared.ErrInvalidInput, s)
	}
}

// FormatColor renders c in format f.
func FormatColor(c colorful.Color, f ColorFormat) string {
	if f == ColorHex {
		return c.Hex()
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}
