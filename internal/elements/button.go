package elements

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/lace"
)

// Variant is the color role of a button.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantPrimary Variant = "primary"
	VariantSuccess Variant = "success"
	VariantNeutral Variant = "neutral"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
)

func (v Variant) style(th *Theme) lipgloss.Style {
	switch v {
	case VariantPrimary:
		return th.Accent
	case VariantSuccess:
		return th.Value
	case VariantWarning, VariantDanger:
		return th.Warn
	case VariantNeutral:
		return th.Muted
	default:
		return th.Label
	}
}

// ButtonOptions configures a [Button].
type ButtonOptions struct {
	Variant    Variant
	Outline    bool
	Pill       bool
	PrefixIcon string
	SuffixIcon string
}

// Button runs a callback when pressed. It is not bound to a host object.
type Button struct {
	static
	onClick  func()
	opts     ButtonOptions
	loading  bool
	disabled bool
}

func NewButton(label string, onClick func(), opts ButtonOptions) *Button {
	return &Button{static: newStatic(label, lace.DisplayBlock), onClick: onClick, opts: opts}
}

func (b *Button) Kind() string              { return "button" }
func (b *Button) Loading() bool             { return b.loading }
func (b *Button) Disabled() bool            { return b.disabled }
func (b *Button) SetLoading(loading bool)   { b.loading = loading }
func (b *Button) SetDisabled(disabled bool) { b.disabled = disabled }

// Click runs the callback unless the button is loading or disabled, and reports whether it ran.
func (b *Button) Click() bool {
	if b.loading || b.disabled || b.onClick == nil {
		return false
	}
	b.onClick()
	return true
}

func (b *Button) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		b.Click()
		return true, nil
	}
	return false, nil
}

func (b *Button) Render(ctx RenderContext) string {
	th := ctx.theme()
	parts := []string{}
	if b.loading {
		parts = append(parts, "⟳")
	} else if b.opts.PrefixIcon != "" {
		parts = append(parts, b.opts.PrefixIcon)
	}
	parts = append(parts, b.Label())
	if b.opts.SuffixIcon != "" {
		parts = append(parts, b.opts.SuffixIcon)
	}

	style := b.opts.Variant.style(th)
	switch {
	case b.disabled:
		style = th.Muted
	case ctx.Focused:
		style = th.Focused
	}
	return style.Render(frame(strings.Join(parts, " "), b.opts.Pill, b.opts.Outline))
}

func frame(text string, pill, outline bool) string {
	l, r := "[ ", " ]"
	if pill {
		l, r = "( ", " )"
	}
	if outline {
		l, r = l[:1]+"╴", "╶"+r[1:]
	}
	return l + text + r
}

// ButtonSelectOptions configures a [ButtonSelect].
type ButtonSelectOptions struct {
	Variant Variant
	Pill    bool
	// Previews holds one image path per option, in option order. Any other count disables them.
	Previews    []string
	PreviewSize int
	Logger      *log.Logger
}

// ButtonSelect is a button that opens a menu and reports the picked key.
type ButtonSelect struct {
	static
	options     []Option
	onClick     func(key string)
	opts        ButtonSelectOptions
	previews    []string
	previewSize int
	open        bool
	cursor      int
}

func NewButtonSelect(label string, options []Option, onClick func(key string), opts ButtonSelectOptions) *ButtonSelect {
	size := opts.PreviewSize
	if size <= 0 {
		size = 40
	}
	return &ButtonSelect{
		static:      newStatic(label, lace.DisplayDefault),
		options:     slices.Clone(options),
		onClick:     onClick,
		opts:        opts,
		previews:    previewsFor(opts.Previews, len(options), opts.Logger, label),
		previewSize: size,
	}
}

func (b *ButtonSelect) Kind() string       { return "buttonSelect" }
func (b *ButtonSelect) Options() []Option  { return slices.Clone(b.options) }
func (b *ButtonSelect) Previews() []string { return slices.Clone(b.previews) }
func (b *ButtonSelect) PreviewSize() int   { return b.previewSize }
func (b *ButtonSelect) Open() bool         { return b.open }
func (b *ButtonSelect) Cursor() int        { return b.cursor }

// Choose reports key to the callback as if picked from the menu, and closes the menu.
func (b *ButtonSelect) Choose(key string) bool {
	if !slices.ContainsFunc(b.options, func(o Option) bool { return o.Value == key }) {
		return false
	}
	b.open = false
	if b.onClick != nil {
		b.onClick(key)
	}
	return true
}

func (b *ButtonSelect) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(b.options) == 0 {
		return false, nil
	}
	if !b.open {
		switch msg.String() {
		case "enter", " ":
			b.open = true
			return true, nil
		}
		return false, nil
	}

	switch msg.String() {
	case "esc":
		b.open = false
	case "left", "h":
		b.cursor = wrap(b.cursor-1, len(b.options))
	case "right", "l":
		b.cursor = wrap(b.cursor+1, len(b.options))
	case "enter", " ":
		b.Choose(b.options[b.cursor].Value)
	default:
		return false, nil
	}
	return true, nil
}

func (b *ButtonSelect) Render(ctx RenderContext) string {
	th := ctx.theme()
	style := b.opts.Variant.style(th)
	if ctx.Focused {
		style = th.Focused
	}
	out := style.Render(frame(b.Label()+" ▾", b.opts.Pill, true))
	if !b.open {
		return out
	}

	items := make([]string, len(b.options))
	for i, o := range b.options {
		text := o.Text
		if b.previews != nil {
			text = "▣ " + text
		}
		if i == b.cursor {
			items[i] = th.Focused.Render("› " + text)
			continue
		}
		items[i] = th.Label.Render("  " + text)
	}
	return out + "\n" + strings.Join(items, "\n")
}
