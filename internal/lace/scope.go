package lace

import "slices"

// Entry is one child of a container as the presentation layer sees it: the child and the
// divider drawn next to it, if any.
type Entry struct {
	Element Element
	Divider *Handle
	// DividerBefore places the divider above the child instead of below it.
	DividerBefore bool
}

// scope is the ordered child list shared by the registry and every container flavor.
type scope struct {
	lace  *Lace
	owner Element // nil for the registry itself
	size  Size

	items    []Element
	dividers map[Element]*Handle
	// before puts dividers between children (none ahead of the first) instead of after each.
	before bool

	// forward, when set, is called after any child edit.
	forward  func()
	forwards map[Element]*Callback
}

func newScope(l *Lace, owner Element, size Size, before bool, forward func()) scope {
	return scope{
		lace:     l,
		owner:    owner,
		size:     size,
		dividers: make(map[Element]*Handle),
		before:   before,
		forward:  forward,
		forwards: make(map[Element]*Callback),
	}
}

func (s *scope) contains(e Element) bool {
	return e != nil && slices.Contains(s.items, e)
}

// attached reports whether this scope is reachable from the registry root.
func (s *scope) attached() bool {
	return s.owner == nil || s.lace.Contains(s.owner)
}

func (s *scope) add(e Element) {
	if e == nil {
		return
	}
	if s.contains(e) {
		s.lace.logger.Debug("element already present", "label", e.Label())
		return
	}

	e.SetSize(s.size)

	if !s.before || len(s.items) > 0 {
		s.dividers[e] = NewHandle(DisplayDefault)
	}
	s.items = append(s.items, e)

	// Linking happens after insertion so siblings inside e's subtree find each other.
	if s.attached() {
		s.lace.connectTree(e)
	}

	if s.forward != nil {
		fwd := NewCallback(s.forward)
		e.RegisterUpdateCallback(fwd)
		s.forwards[e] = fwd
	}
}

func (s *scope) hide(e Element) {
	if !s.contains(e) {
		s.lace.logger.Debug("hide ignored for non-member", "label", labelOf(e))
		return
	}
	e.Handle().hide()
	if d, ok := s.dividers[e]; ok {
		d.hide()
	}
}

func (s *scope) show(e Element) {
	if !s.contains(e) {
		s.lace.logger.Debug("show ignored for non-member", "label", labelOf(e))
		return
	}
	e.Handle().show()
	if d, ok := s.dividers[e]; ok {
		d.show()
	}
}

// reset severs every link held by the children's subtrees and empties the scope.
func (s *scope) reset() {
	for _, e := range s.items {
		s.lace.disconnectTree(e)
		if fwd, ok := s.forwards[e]; ok {
			e.DeregisterUpdateCallback(fwd)
		}
	}
	s.items = nil
	clear(s.dividers)
	clear(s.forwards)
}

func (s *scope) elements() []Element {
	return slices.Clone(s.items)
}

func (s *scope) entries() []Entry {
	out := make([]Entry, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, Entry{Element: e, Divider: s.dividers[e], DividerBefore: s.before})
	}
	return out
}

func (s *scope) update() {
	for _, e := range s.items {
		e.Update()
	}
}

func labelOf(e Element) string {
	if e == nil {
		return ""
	}
	return e.Label()
}
