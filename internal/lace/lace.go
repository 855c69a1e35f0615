package lace

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lacery/internal/binding"
)

// Options configures a [Lace] registry.
type Options struct {
	// Size is applied to every top-level control. The zero value is [SizeSmall].
	Size     Size
	DarkMode bool
	// Logger receives debug traces of link changes and absorbed no-ops. Defaults to discarding.
	Logger *log.Logger
}

// link is one installed cross-link between two controls bound to the same field.
type link struct {
	a, b Element
	onA  *Callback // registered on a, refreshes b
	onB  *Callback // registered on b, refreshes a
}

// Lace is the root registry. It owns the top-level controls and the cross-links between
// every registered pair of controls sharing a bound field.
type Lace struct {
	scope
	dark   bool
	logger *log.Logger
	handle *Handle
	links  map[Element]map[Element]*link
}

// New creates an empty registry.
func New(opts Options) *Lace {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	l := &Lace{
		dark:   opts.DarkMode,
		logger: logger,
		handle: NewHandle(DisplayBlock),
		links:  make(map[Element]map[Element]*link),
	}
	l.scope = newScope(l, nil, opts.Size, false, nil)
	return l
}

// Add appends e to the top level, applies the registry size and cross-links every control in
// e's subtree with its registered peers.
func (l *Lace) Add(e Element) {
	l.add(e)
}

// AddFolder creates a folder bound to this registry and adds it.
func (l *Lace) AddFolder(label string, opts FolderOptions) *Folder {
	f := NewFolder(label, l, opts)
	l.Add(f)
	return f
}

// AddGroup creates a group bound to this registry and adds it.
func (l *Lace) AddGroup(opts GroupOptions) *Group {
	g := NewGroup(l, opts)
	l.Add(g)
	return g
}

// AddTab creates a tab container bound to this registry and adds it.
func (l *Lace) AddTab(opts TabOptions) *Tab {
	t := NewTab(l, opts)
	l.Add(t)
	return t
}

// Hide hides a top-level control and its divider. No-op for non-members.
func (l *Lace) Hide(e Element) { l.hide(e) }

// Show restores a top-level control hidden by [Lace.Hide]. No-op for non-members.
func (l *Lace) Show(e Element) { l.show(e) }

// HideAll hides every top-level control.
func (l *Lace) HideAll() {
	for _, e := range l.items {
		l.hide(e)
	}
}

// ShowAll shows every top-level control.
func (l *Lace) ShowAll() {
	for _, e := range l.items {
		l.show(e)
	}
}

// Elements returns the top-level controls in insertion order.
func (l *Lace) Elements() []Element { return l.elements() }

// Entries returns the top-level controls with their dividers.
func (l *Lace) Entries() []Entry { return l.entries() }

// Update refreshes every registered control from its host object.
func (l *Lace) Update() { l.update() }

func (l *Lace) Handle() *Handle { return l.handle }
func (l *Lace) DarkMode() bool  { return l.dark }
func (l *Lace) Size() Size      { return l.size }
func (l *Lace) Logger() *log.Logger {
	return l.logger
}

// Flatten returns every registered leaf control, breadth first.
func (l *Lace) Flatten() []Element {
	var leaves []Element
	l.walk(func(e Element) {
		if _, ok := e.(Container); !ok {
			leaves = append(leaves, e)
		}
	})
	return leaves
}

// Contains reports whether e is reachable from the top level, containers included.
func (l *Lace) Contains(e Element) bool {
	if e == nil {
		return false
	}
	found := false
	l.walk(func(x Element) {
		if x == e {
			found = true
		}
	})
	return found
}

// Peers returns the registered controls sharing e's object and at least one of its keys.
func (l *Lace) Peers(e Element) []Element {
	if e == nil || !e.Binds() || e.Obj() == nil {
		return nil
	}

	var peers []Element
	for _, x := range l.Flatten() {
		if x == e || !x.Binds() {
			continue
		}
		if binding.Same(e.Obj(), x.Obj()) && binding.Overlaps(e.Keys(), x.Keys()) {
			peers = append(peers, x)
		}
	}
	return peers
}

// Connect cross-links e with every registered peer. Each pair is linked at most once, so
// connecting twice installs nothing new. Containers are never linked themselves.
func (l *Lace) Connect(e Element) {
	if e == nil || !e.Binds() {
		return
	}

	for _, peer := range l.Peers(e) {
		if l.Linked(e, peer) {
			continue
		}

		lk := &link{a: e, b: peer, onA: NewCallback(peer.Update), onB: NewCallback(e.Update)}
		e.RegisterUpdateCallback(lk.onA)
		peer.RegisterUpdateCallback(lk.onB)
		l.record(e, peer, lk)
		l.record(peer, e, lk)

		l.logger.Debug("linked", "element", e.Label(), "peer", peer.Label(), "keys", e.Keys())
	}
}

// Disconnect removes every cross-link e takes part in, using the handles recorded when the
// links were installed.
func (l *Lace) Disconnect(e Element) {
	if e == nil {
		return
	}

	for peer, lk := range l.links[e] {
		lk.a.DeregisterUpdateCallback(lk.onA)
		lk.b.DeregisterUpdateCallback(lk.onB)
		delete(l.links[peer], e)
		if len(l.links[peer]) == 0 {
			delete(l.links, peer)
		}

		l.logger.Debug("unlinked", "element", e.Label(), "peer", peer.Label())
	}
	delete(l.links, e)
}

// Linked reports whether a cross-link between a and b is installed.
func (l *Lace) Linked(a, b Element) bool {
	_, ok := l.links[a][b]
	return ok
}

// LinkedPeers returns the controls currently cross-linked with e, in no particular order.
func (l *Lace) LinkedPeers(e Element) []Element {
	peers := make([]Element, 0, len(l.links[e]))
	for x := range l.links[e] {
		peers = append(peers, x)
	}
	return peers
}

func (l *Lace) record(from, to Element, lk *link) {
	m, ok := l.links[from]
	if !ok {
		m = make(map[Element]*link)
		l.links[from] = m
	}
	m[to] = lk
}

// walk visits every registered element breadth first, containers before their children.
func (l *Lace) walk(fn func(Element)) {
	queue := l.elements()
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		fn(e)
		if c, ok := e.(Container); ok {
			queue = append(queue, c.Elements()...)
		}
	}
}

// connectTree connects e, or every leaf below e when e is a container.
func (l *Lace) connectTree(e Element) {
	for _, leaf := range leavesOf(e) {
		l.Connect(leaf)
	}
}

// disconnectTree disconnects e, or every leaf below e when e is a container.
func (l *Lace) disconnectTree(e Element) {
	for _, leaf := range leavesOf(e) {
		l.Disconnect(leaf)
	}
}

func leavesOf(e Element) []Element {
	c, ok := e.(Container)
	if !ok {
		return []Element{e}
	}

	var leaves []Element
	queue := c.Elements()
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		if sub, ok := x.(Container); ok {
			queue = append(queue, sub.Elements()...)
			continue
		}
		leaves = append(leaves, x)
	}
	return leaves
}
