package lace

// FolderOptions configures a [Folder].
type FolderOptions struct {
	DarkMode bool
	// Size is applied to every child. The zero value is [SizeSmall].
	Size Size
	// Closed starts the folder collapsed.
	Closed bool
}

// Folder is a collapsible region of controls. Its open flag is independent of the
// visibility of its children.
type Folder struct {
	Base
	scope
	open bool
	dark bool
}

// NewFolder creates a standalone folder labelled label.
func NewFolder(label string, l *Lace, opts FolderOptions) *Folder {
	f := &Folder{
		Base: NewBase(label, DisplayDefault),
		open: !opts.Closed,
		dark: opts.DarkMode,
	}
	f.scope = newScope(l, f, opts.Size, false, nil)
	return f
}

// Add appends e to the folder.
func (f *Folder) Add(e Element) { f.add(e) }

// AddFolder creates a nested folder and adds it.
func (f *Folder) AddFolder(label string, opts FolderOptions) *Folder {
	sub := NewFolder(label, f.lace, opts)
	f.Add(sub)
	return sub
}

// AddGroup creates a group and adds it to the folder.
func (f *Folder) AddGroup(opts GroupOptions) *Group {
	g := NewGroup(f.lace, opts)
	f.Add(g)
	return g
}

// Reset disconnects and discards every child.
func (f *Folder) Reset() { f.reset() }

// Hide hides a direct child. No-op for anything else.
func (f *Folder) Hide(e Element) { f.hide(e) }

// Show restores a direct child hidden by [Folder.Hide].
func (f *Folder) Show(e Element) { f.show(e) }

func (f *Folder) Open() bool        { return f.open }
func (f *Folder) SetOpen(open bool) { f.open = open }
func (f *Folder) Toggle()           { f.open = !f.open }
func (f *Folder) DarkMode() bool    { return f.dark }

func (f *Folder) Elements() []Element { return f.elements() }
func (f *Folder) Entries() []Entry    { return f.entries() }

func (f *Folder) Obj() any       { return nil }
func (f *Folder) Keys() []string { return nil }
func (f *Folder) Binds() bool    { return false }
func (f *Folder) SetSize(Size)   {}
func (f *Folder) Update()        { f.update() }
