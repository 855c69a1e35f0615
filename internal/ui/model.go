package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/elements"
	"github.com/desertthunder/lacery/internal/lace"
)

// Options configures a [Model].
type Options struct {
	Title string
	// StyleID names the palette registration. Defaults to [DefaultStyleID].
	StyleID string
	// Palette is registered under StyleID unless one already is. Defaults to [PaletteFor] the
	// registry's dark mode.
	Palette *Palette
	// OnEdit runs after every key a control consumed and after every applied texture or preset.
	OnEdit  func() tea.Cmd
	Presets PresetSource
	Logger  *log.Logger
}

type rowKind int

const (
	rowControl rowKind = iota
	rowFolder
	rowTabs
	rowDivider
)

// row is one visible line group of the panel.
type row struct {
	kind  rowKind
	el    lace.Element
	depth int
	// folder and tab are the nearest enclosing containers of el.
	folder *lace.Folder
	tab    *lace.Tab
}

// Model represents the panel state.
type Model struct {
	lace    *lace.Lace
	palette *Palette
	title   string
	onEdit  func() tea.Cmd
	presets PresetSource
	logger  *log.Logger

	keys    keyMap
	help    help.Model
	picker  list.Model
	picking bool

	focused  lace.Element
	width    int
	height   int
	status   StatusMsg
	quitting bool
}

// NewModel creates a panel over l.
func NewModel(l *lace.Lace, opts Options) *Model {
	id := opts.StyleID
	if id == "" {
		id = DefaultStyleID
	}
	p := opts.Palette
	if p == nil {
		p = PaletteFor(l.DarkMode())
	}
	InjectStyles(id, p)
	p, _ = Styles(id)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		lace:    l,
		palette: p,
		title:   opts.Title,
		onEdit:  opts.OnEdit,
		presets: opts.Presets,
		logger:  logger,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	m.ensureFocus()
	return m
}

// Focused returns the focused control or folder, nil when nothing can take focus.
func (m *Model) Focused() lace.Element { return m.focused }

// Picking reports whether the preset picker is open.
func (m *Model) Picking() bool { return m.picking }

// Status returns the current status line.
func (m *Model) Status() StatusMsg { return m.status }

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.picking {
			m.picker.SetSize(msg.Width, msg.Height-4)
		}
		return m, nil

	case elements.TextureLoadedMsg:
		if msg.Target == nil {
			return m, nil
		}
		msg.Target.Apply(msg)
		if msg.Err != nil {
			m.status = StatusMsg{Err: fmt.Errorf("failed to load %s: %w", msg.Path, msg.Err)}
			return m, nil
		}
		m.status = StatusMsg{Text: fmt.Sprintf("loaded %s (%s %dx%d)", msg.Path, msg.Info.Format, msg.Info.Width, msg.Info.Height)}
		return m, m.edited()

	case StatusMsg:
		m.status = msg
		return m, nil

	case presetsLoadedMsg:
		if msg.err != nil {
			m.status = StatusMsg{Err: msg.err}
			return m, nil
		}
		if len(msg.names) == 0 {
			m.status = StatusMsg{Text: "no presets saved"}
			return m, nil
		}
		m.picker = newPresetList(msg.names, m.width, m.height-4)
		m.picking = true
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.handlePickerKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes focus movement first, then the focused control, then the remaining
// panel keys.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ensureFocus()

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "up":
		m.move(-1)
		return m, nil
	case "down":
		m.move(1)
		return m, nil
	case "tab":
		m.nextTab()
		return m, nil
	}

	if h, ok := m.focused.(elements.KeyHandler); ok {
		if consumed, cmd := h.HandleKey(msg); consumed {
			return m, tea.Batch(cmd, m.edited())
		}
	}

	switch {
	case key.Matches(msg, m.keys.nextTab):
		m.nextTab()
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.folder):
		m.toggleFolder(false)
	case key.Matches(msg, m.keys.activate):
		m.toggleFolder(true)
	case key.Matches(msg, m.keys.presets):
		return m, m.loadPresets()
	}
	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.picker.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back):
			m.picking = false
			return m, nil
		case msg.String() == "enter":
			m.picking = false
			if item, ok := m.picker.SelectedItem().(presetItem); ok {
				return m, m.applyPreset(item.name)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) edited() tea.Cmd {
	if m.onEdit == nil {
		return nil
	}
	return m.onEdit()
}

func (m *Model) loadPresets() tea.Cmd {
	if m.presets == nil {
		m.status = StatusMsg{Text: "presets are not available"}
		return nil
	}

	source := m.presets
	return func() tea.Msg {
		names, err := source.Names()
		return presetsLoadedMsg{names: names, err: err}
	}
}

func (m *Model) applyPreset(name string) tea.Cmd {
	if err := m.presets.Load(name); err != nil {
		m.logger.Warn("failed to load preset", "name", name, "error", err)
		m.status = StatusMsg{Err: err}
		return nil
	}

	m.lace.Update()
	m.status = StatusMsg{Text: "loaded preset " + name}
	return m.edited()
}

// rows walks the registry in display order, skipping hidden controls and collapsed or
// inactive regions.
func (m *Model) rows() []row {
	var out []row
	walk(m.lace.Entries(), 0, nil, nil, &out)
	return out
}

func walk(entries []lace.Entry, depth int, folder *lace.Folder, tab *lace.Tab, out *[]row) {
	for _, en := range entries {
		if en.Element.Handle().Hidden() {
			continue
		}
		if en.Divider != nil && en.DividerBefore && !en.Divider.Hidden() {
			*out = append(*out, row{kind: rowDivider, depth: depth})
		}

		switch e := en.Element.(type) {
		case *lace.Folder:
			*out = append(*out, row{kind: rowFolder, el: e, depth: depth, folder: folder, tab: tab})
			if e.Open() {
				walk(e.Entries(), depth+1, e, tab, out)
			}
		case *lace.Group:
			walk(e.Entries(), depth, folder, tab, out)
		case *lace.Tab:
			*out = append(*out, row{kind: rowTabs, el: e, depth: depth, folder: folder, tab: e})
			if p := e.Panel(e.Active()); p != nil {
				walk(p.Entries(), depth+1, folder, e, out)
			}
		default:
			*out = append(*out, row{kind: rowControl, el: e, depth: depth, folder: folder, tab: tab})
		}

		if en.Divider != nil && !en.DividerBefore && !en.Divider.Hidden() {
			*out = append(*out, row{kind: rowDivider, depth: depth})
		}
	}
}

// targets filters rows down to what can take focus.
func targets(rows []row) []row {
	var out []row
	for _, r := range rows {
		switch r.kind {
		case rowFolder:
			out = append(out, r)
		case rowControl:
			if _, ok := r.el.(elements.KeyHandler); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

func indexOf(ts []row, e lace.Element) int {
	for i, r := range ts {
		if r.el == e {
			return i
		}
	}
	return -1
}

// ensureFocus moves focus to the first target when the focused element is gone or hidden.
func (m *Model) ensureFocus() {
	ts := targets(m.rows())
	if indexOf(ts, m.focused) >= 0 {
		return
	}
	m.focused = nil
	if len(ts) > 0 {
		m.focused = ts[0].el
	}
}

func (m *Model) move(dir int) {
	ts := targets(m.rows())
	if len(ts) == 0 {
		return
	}
	i := max(0, min(indexOf(ts, m.focused)+dir, len(ts)-1))
	m.focused = ts[i].el
}

func (m *Model) focusedRow() (row, bool) {
	for _, r := range m.rows() {
		if r.el != nil && r.el == m.focused {
			return r, true
		}
	}
	return row{}, false
}

// nextTab advances the tab enclosing the focused element, or the first visible tab, and
// focuses the first target of the newly shown panel.
func (m *Model) nextTab() {
	var t *lace.Tab
	if r, ok := m.focusedRow(); ok {
		t = r.tab
	}
	if t == nil {
		for _, r := range m.rows() {
			if r.kind == rowTabs {
				t = r.tab
				break
			}
		}
	}
	if t == nil {
		return
	}

	t.Next()
	for _, r := range targets(m.rows()) {
		if r.tab == t && r.el != t {
			m.focused = r.el
			return
		}
	}
	m.ensureFocus()
}

// toggleFolder toggles a focused folder header. Unless headerOnly is set, focus inside an
// open folder collapses that folder and moves focus to its header.
func (m *Model) toggleFolder(headerOnly bool) {
	r, ok := m.focusedRow()
	if !ok {
		return
	}

	switch {
	case r.kind == rowFolder:
		r.el.(*lace.Folder).Toggle()
	case !headerOnly && r.folder != nil:
		r.folder.Toggle()
		m.focused = r.folder
	}
}

// View renders the panel, the status line and the help footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picking {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.activate, m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", m.picker.View(), helpView)
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.palette.title.Render(m.title))
		b.WriteString("\n")
	}

	for _, r := range m.rows() {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2 * r.depth).Render(m.renderRow(r)))
		b.WriteString("\n")
	}

	switch {
	case m.status.Err != nil:
		b.WriteString("\n" + m.palette.err.Render("Error: "+m.status.Err.Error()) + "\n")
	case m.status.Text != "":
		b.WriteString("\n" + m.palette.ok.Render(m.status.Text) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) widthAt(depth int) int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-2*depth, 16)
}

func (m *Model) renderRow(r row) string {
	th := m.palette.Theme()
	focused := r.el != nil && r.el == m.focused

	switch r.kind {
	case rowDivider:
		w := m.widthAt(r.depth)
		if w == 0 {
			w = 48
		}
		return th.Divider.Render(strings.Repeat("─", w))
	case rowFolder:
		f := r.el.(*lace.Folder)
		marker := "▸"
		if f.Open() {
			marker = "▾"
		}
		style := th.Label.Bold(true)
		if focused {
			style = th.Focused
		}
		return style.Render(marker + " " + f.Label())
	case rowTabs:
		return renderTabs(r.el.(*lace.Tab), th)
	}

	if c, ok := r.el.(elements.Control); ok {
		return c.Render(elements.RenderContext{Theme: th, Width: m.widthAt(r.depth), Focused: focused})
	}
	return th.Muted.Render(r.el.Label())
}

func renderTabs(t *lace.Tab, th *elements.Theme) string {
	var names []string
	for _, p := range t.Panels() {
		text := p.Name()
		if p.Icon() != "" {
			text = p.Icon() + " " + text
		}
		style := th.Muted
		if p.Active() {
			style = th.Accent.Bold(true).Underline(true)
		}
		names = append(names, style.Render(text))
	}

	if t.Vertical() {
		return lipgloss.JoinVertical(lipgloss.Left, names...)
	}
	return strings.Join(names, "  ")
}
