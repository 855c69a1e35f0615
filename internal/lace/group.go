package lace

// GroupOptions configures a [Group].
type GroupOptions struct {
	// Size is applied to every child. The zero value is [SizeSmall].
	Size Size
}

// Group is a plain ordered region of controls. An edit on any child is re-announced as a
// change of the group itself.
type Group struct {
	Base
	scope
}

// NewGroup creates a standalone group. Its children are linked once the group is reachable
// from l.
func NewGroup(l *Lace, opts GroupOptions) *Group {
	g := &Group{Base: NewBase("laceGroup", DisplayDefault)}
	g.scope = newScope(l, g, opts.Size, true, g.Changed)
	return g
}

// Add appends e to the group.
func (g *Group) Add(e Element) { g.add(e) }

// AddFolder creates a folder and adds it to the group.
func (g *Group) AddFolder(label string, opts FolderOptions) *Folder {
	f := NewFolder(label, g.lace, opts)
	g.Add(f)
	return f
}

// AddGroup creates a nested group and adds it to the group.
func (g *Group) AddGroup(opts GroupOptions) *Group {
	sub := NewGroup(g.lace, opts)
	g.Add(sub)
	return sub
}

// Reset disconnects and discards every child.
func (g *Group) Reset() { g.reset() }

// Hide hides a direct child. No-op for anything else.
func (g *Group) Hide(e Element) { g.hide(e) }

// Show restores a direct child hidden by [Group.Hide].
func (g *Group) Show(e Element) { g.show(e) }

func (g *Group) Elements() []Element { return g.elements() }
func (g *Group) Entries() []Entry    { return g.entries() }

func (g *Group) Obj() any       { return nil }
func (g *Group) Keys() []string { return nil }
func (g *Group) Binds() bool    { return false }
func (g *Group) SetSize(Size)   {}
func (g *Group) Update()        { g.update() }
