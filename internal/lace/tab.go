package lace

import "slices"

// TabOptions configures a [Tab].
type TabOptions struct {
	// Vertical lays tab names out in a column.
	Vertical bool
	// OnTabChange runs after every transition with the newly active tab name.
	OnTabChange func(name string)
}

// Tab holds named [TabPanel] regions and tracks which one is active.
//
// Before the first [Tab.Show] no tab is active. Transitions fire the previous panel's
// deselect callback, then the next panel's select callback, then OnTabChange. Active already
// reports the new tab when the select callback and OnTabChange run.
type Tab struct {
	Base
	lace        *Lace
	vertical    bool
	onTabChange func(string)
	panels      []*TabPanel
	active      string
}

// NewTab creates a standalone tab container.
func NewTab(l *Lace, opts TabOptions) *Tab {
	return &Tab{
		Base:        NewBase("laceTab", DisplayDefault),
		lace:        l,
		vertical:    opts.Vertical,
		onTabChange: opts.OnTabChange,
	}
}

// AddTab declares a new tab. Declaring an existing name returns the existing panel.
func (t *Tab) AddTab(name, icon string) *TabPanel {
	if p := t.Panel(name); p != nil {
		return p
	}

	p := &TabPanel{name: name, icon: icon, tab: t}
	p.scope = newScope(t.lace, t, t.lace.size, true, t.Changed)
	t.panels = append(t.panels, p)
	return p
}

// Show makes name the active tab. Unknown names and the already active tab are no-ops.
func (t *Tab) Show(name string) {
	next := t.Panel(name)
	if next == nil {
		t.lace.logger.Debug("show ignored for unknown tab", "tab", name)
		return
	}
	if name == t.active {
		return
	}

	if prev := t.Panel(t.active); prev != nil {
		prev.deselect()
	}
	t.active = name
	next.selectPanel()
	if t.onTabChange != nil {
		t.onTabChange(name)
	}
}

// Next shows the tab declared after the active one, wrapping to the first. With no active
// tab it shows the first one.
func (t *Tab) Next() {
	if len(t.panels) == 0 {
		return
	}

	i := slices.IndexFunc(t.panels, func(p *TabPanel) bool { return p.name == t.active })
	t.Show(t.panels[(i+1)%len(t.panels)].name)
}

// Active returns the active tab name, empty before the first transition.
func (t *Tab) Active() string { return t.active }

// Names returns the tab names in declaration order.
func (t *Tab) Names() []string {
	names := make([]string, len(t.panels))
	for i, p := range t.panels {
		names[i] = p.name
	}
	return names
}

// Panel returns the panel declared as name, or nil.
func (t *Tab) Panel(name string) *TabPanel {
	for _, p := range t.panels {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Panels returns every panel in declaration order.
func (t *Tab) Panels() []*TabPanel { return slices.Clone(t.panels) }

func (t *Tab) Vertical() bool { return t.vertical }

// Elements returns the children of every panel, panel by panel.
func (t *Tab) Elements() []Element {
	var out []Element
	for _, p := range t.panels {
		out = append(out, p.items...)
	}
	return out
}

func (t *Tab) Obj() any       { return nil }
func (t *Tab) Keys() []string { return nil }
func (t *Tab) Binds() bool    { return false }
func (t *Tab) SetSize(Size)   {}

func (t *Tab) Update() {
	for _, p := range t.panels {
		p.Update()
	}
}

// TabPanel is the region owned by one tab. An edit on any child is re-announced as a change
// of the owning [Tab].
type TabPanel struct {
	scope
	name         string
	icon         string
	tab          *Tab
	onSelected   func()
	onDeselected func()
}

func (p *TabPanel) Name() string { return p.name }
func (p *TabPanel) Icon() string { return p.icon }

// Active reports whether this panel is the owning tab's active panel.
func (p *TabPanel) Active() bool { return p.tab.active == p.name }

// OnSelected replaces the callback run when this tab becomes active.
func (p *TabPanel) OnSelected(fn func()) { p.onSelected = fn }

// OnDeselected replaces the callback run when this tab stops being active.
func (p *TabPanel) OnDeselected(fn func()) { p.onDeselected = fn }

// Add appends e to the panel.
func (p *TabPanel) Add(e Element) { p.add(e) }

// AddFolder creates a folder and adds it to the panel.
func (p *TabPanel) AddFolder(label string, opts FolderOptions) *Folder {
	f := NewFolder(label, p.lace, opts)
	p.Add(f)
	return f
}

// AddGroup creates a group and adds it to the panel.
func (p *TabPanel) AddGroup(opts GroupOptions) *Group {
	g := NewGroup(p.lace, opts)
	p.Add(g)
	return g
}

// Hide hides a direct child of the panel.
func (p *TabPanel) Hide(e Element) { p.hide(e) }

// Show restores a direct child hidden by [TabPanel.Hide].
func (p *TabPanel) Show(e Element) { p.show(e) }

// Reset disconnects and discards every child of the panel.
func (p *TabPanel) Reset() { p.reset() }

// Update refreshes every child of the panel.
func (p *TabPanel) Update() { p.update() }

func (p *TabPanel) Elements() []Element { return p.elements() }
func (p *TabPanel) Entries() []Entry    { return p.entries() }

func (p *TabPanel) selectPanel() {
	if p.onSelected != nil {
		p.onSelected()
	}
}

func (p *TabPanel) deselect() {
	if p.onDeselected != nil {
		p.onDeselected()
	}
}
