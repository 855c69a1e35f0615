package lace

import (
	"testing"
)

type point struct {
	X float64 `lace:"x"`
	Y float64 `lace:"y"`
}

func TestConnect(t *testing.T) {
	t.Run("edits propagate to peers exactly once", func(t *testing.T) {
		obj := map[string]any{"x": 1.0}
		l := New(Options{})
		a := newProbe("a", obj, "x")
		b := newProbe("b", obj, "x")
		l.Add(a)
		l.Add(b)

		a.edit(4)
		if b.updates != 1 {
			t.Fatalf("expected b to refresh once, got %d", b.updates)
		}
		if b.shown != 4 {
			t.Errorf("expected b to show 4, got %v", b.shown)
		}
		if a.updates != 0 {
			t.Errorf("edited control must not refresh itself, got %d", a.updates)
		}

		b.edit(2)
		if a.updates != 1 || a.shown != 2 {
			t.Errorf("expected reverse propagation, got updates=%d shown=%v", a.updates, a.shown)
		}
	})

	t.Run("refresh does not announce a change", func(t *testing.T) {
		obj := map[string]any{"x": 1.0}
		l := New(Options{})
		a := newProbe("a", obj, "x")
		b := newProbe("b", obj, "x")
		l.Add(a)
		l.Add(b)

		changes := 0
		b.OnChange(func() { changes++ })
		a.edit(3)

		if changes != 0 {
			t.Errorf("refresh triggered %d change notifications", changes)
		}
	})

	t.Run("distinct objects and disjoint keys are not linked", func(t *testing.T) {
		p, q := &point{}, &point{}
		l := New(Options{})
		a := newProbe("a", p, "x")
		b := newProbe("b", q, "x")
		c := newProbe("c", p, "y")
		l.Add(a)
		l.Add(b)
		l.Add(c)

		a.edit(1)
		if b.updates != 0 || c.updates != 0 {
			t.Errorf("unexpected refresh: b=%d c=%d", b.updates, c.updates)
		}
		if len(l.LinkedPeers(a)) != 0 {
			t.Errorf("expected no links, got %d", len(l.LinkedPeers(a)))
		}
	})

	t.Run("multi-key overlap links once", func(t *testing.T) {
		p := &point{}
		l := New(Options{})
		vec := newProbe("vec", p, "x", "y")
		x := newProbe("x", p, "x")
		y := newProbe("y", p, "y")
		both := newProbe("both", p, "y", "x")
		l.Add(vec)
		l.Add(x)
		l.Add(y)
		l.Add(both)

		vec.edit(2)
		for _, peer := range []*probe{x, y, both} {
			if peer.updates != 1 {
				t.Errorf("%s refreshed %d times, want 1", peer.Label(), peer.updates)
			}
		}
		if x.shown != 2 {
			t.Errorf("expected x to show 2, got %v", x.shown)
		}
		if !l.Linked(vec, both) || !l.Linked(both, vec) {
			t.Error("expected link recorded in both directions")
		}
	})

	t.Run("connect is idempotent", func(t *testing.T) {
		obj := map[string]any{"x": 0.0}
		l := New(Options{})
		a := newProbe("a", obj, "x")
		b := newProbe("b", obj, "x")
		l.Add(a)
		l.Add(b)

		l.Connect(a)
		l.Connect(b)
		l.Connect(a)

		if len(a.UpdateCallbacks()) != 1 || len(b.UpdateCallbacks()) != 1 {
			t.Fatalf("expected one callback each, got %d and %d",
				len(a.UpdateCallbacks()), len(b.UpdateCallbacks()))
		}
		a.edit(1)
		if b.updates != 1 {
			t.Errorf("expected one refresh, got %d", b.updates)
		}
	})

	t.Run("disconnect restores callback lists", func(t *testing.T) {
		obj := map[string]any{"x": 0.0}
		l := New(Options{})
		a := newProbe("a", obj, "x")
		b := newProbe("b", obj, "x")
		l.Add(a)
		l.Add(b)
		beforeA, beforeB := len(a.UpdateCallbacks()), len(b.UpdateCallbacks())

		c := newProbe("c", obj, "x")
		l.Connect(c)
		if len(c.UpdateCallbacks()) != 2 {
			t.Fatalf("expected c linked to both registered peers, got %d", len(c.UpdateCallbacks()))
		}

		l.Disconnect(c)
		if len(a.UpdateCallbacks()) != beforeA || len(b.UpdateCallbacks()) != beforeB {
			t.Errorf("callback lists not restored: a=%d b=%d", len(a.UpdateCallbacks()), len(b.UpdateCallbacks()))
		}
		if len(c.UpdateCallbacks()) != 0 {
			t.Errorf("expected c to hold no callbacks, got %d", len(c.UpdateCallbacks()))
		}

		a.edit(5)
		if c.updates != 0 {
			t.Errorf("disconnected control refreshed %d times", c.updates)
		}
		if b.updates != 1 {
			t.Errorf("remaining link broken, b refreshed %d times", b.updates)
		}

		l.Disconnect(c)
	})

	t.Run("nil object and nil element", func(t *testing.T) {
		l := New(Options{})
		l.Add(newProbe("a", nil, "x"))
		orphan := newProbe("b", nil, "x")
		l.Connect(orphan)
		l.Connect(nil)
		l.Disconnect(nil)

		if len(l.Peers(orphan)) != 0 || len(orphan.UpdateCallbacks()) != 0 {
			t.Error("controls without an object must not link")
		}
	})

	t.Run("containers are never linked", func(t *testing.T) {
		l := New(Options{})
		g := l.AddGroup(GroupOptions{})
		l.Connect(g)
		if len(l.LinkedPeers(g)) != 0 || len(l.Peers(g)) != 0 {
			t.Error("containers have no peers")
		}
	})
}

func TestAdd(t *testing.T) {
	t.Run("applies the registry size", func(t *testing.T) {
		l := New(Options{Size: SizeMedium})
		p := newProbe("p", nil)
		l.Add(p)
		if p.size != SizeMedium {
			t.Errorf("expected medium, got %v", p.size)
		}
	})

	t.Run("duplicate adds are ignored", func(t *testing.T) {
		l := New(Options{})
		p := newProbe("p", nil)
		l.Add(p)
		l.Add(p)
		l.Add(nil)
		if len(l.Elements()) != 1 {
			t.Errorf("expected 1 element, got %d", len(l.Elements()))
		}
	})

	t.Run("every top-level control gets a divider", func(t *testing.T) {
		l := New(Options{})
		l.Add(newProbe("a", nil))
		l.Add(newProbe("b", nil))
		for _, e := range l.Entries() {
			if e.Divider == nil || e.DividerBefore {
				t.Errorf("%s: expected a trailing divider", e.Element.Label())
			}
		}
	})

	t.Run("nested controls link with top-level peers", func(t *testing.T) {
		obj := map[string]any{"x": 1.0}
		l := New(Options{})
		top := newProbe("top", obj, "x")
		l.Add(top)

		f := l.AddFolder("f", FolderOptions{})
		g := f.AddGroup(GroupOptions{})
		deep := newProbe("deep", obj, "x")
		g.Add(deep)

		top.edit(7)
		if deep.updates != 1 || deep.shown != 7 {
			t.Errorf("expected deep refresh, got updates=%d shown=%v", deep.updates, deep.shown)
		}
	})

	t.Run("detached containers link when attached", func(t *testing.T) {
		obj := map[string]any{"x": 1.0}
		l := New(Options{})
		top := newProbe("top", obj, "x")
		l.Add(top)

		g := NewGroup(l, GroupOptions{})
		first := newProbe("first", obj, "x")
		second := newProbe("second", obj, "x")
		g.Add(first)
		g.Add(second)

		top.edit(2)
		if first.updates != 0 {
			t.Fatalf("detached child refreshed %d times", first.updates)
		}

		l.Add(g)
		top.edit(3)
		if first.updates != 1 || second.updates != 1 {
			t.Errorf("expected attached children to refresh, got %d and %d", first.updates, second.updates)
		}
		first.edit(4)
		if second.shown != 4 {
			t.Errorf("siblings in the attached group should be linked, got %v", second.shown)
		}
	})

	t.Run("flatten descends into every container", func(t *testing.T) {
		l := New(Options{})
		a := newProbe("a", nil)
		l.Add(a)
		f := l.AddFolder("f", FolderOptions{})
		b := newProbe("b", nil)
		f.Add(b)
		tab := l.AddTab(TabOptions{})
		c := newProbe("c", nil)
		tab.AddTab("one", "").Add(c)
		g := f.AddGroup(GroupOptions{})
		d := newProbe("d", nil)
		g.Add(d)

		got := l.Flatten()
		want := []Element{a, b, c, d}
		if len(got) != len(want) {
			t.Fatalf("expected %d leaves, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i].Label(), got[i].Label())
			}
		}
		if !l.Contains(g) || !l.Contains(d) || l.Contains(newProbe("x", nil)) {
			t.Error("unexpected Contains result")
		}
	})
}

func TestHideShow(t *testing.T) {
	t.Run("hide and show are inverse", func(t *testing.T) {
		l := New(Options{})
		a := newProbe("a", nil)
		l.Add(a)

		l.Hide(a)
		if !a.Handle().Hidden() || !l.Entries()[0].Divider.Hidden() {
			t.Fatal("expected control and divider hidden")
		}
		l.Hide(a)
		l.Show(a)
		if a.Handle().Display() != DisplayBlock {
			t.Errorf("expected block after show, got %q", a.Handle().Display())
		}
		if l.Entries()[0].Divider.Hidden() {
			t.Error("expected divider restored")
		}
	})

	t.Run("show without hide is a no-op", func(t *testing.T) {
		l := New(Options{})
		a := newProbe("a", nil)
		l.Add(a)
		a.Handle().SetDisplay(DisplayInline)
		l.Show(a)
		if a.Handle().Display() != DisplayInline {
			t.Errorf("expected inline, got %q", a.Handle().Display())
		}
	})

	t.Run("non-members are untouched", func(t *testing.T) {
		l := New(Options{})
		g := l.AddGroup(GroupOptions{})
		inner := newProbe("inner", nil)
		g.Add(inner)
		outsider := newProbe("outsider", nil)

		l.Hide(inner)
		l.Hide(outsider)
		g.Hide(outsider)
		l.Hide(nil)

		if inner.Handle().Hidden() || outsider.Handle().Hidden() {
			t.Error("hide must only affect direct children")
		}
	})

	t.Run("hiding a container does not touch its children", func(t *testing.T) {
		l := New(Options{})
		f := l.AddFolder("f", FolderOptions{})
		a := newProbe("a", nil)
		f.Add(a)

		l.Hide(f)
		if !f.Handle().Hidden() || a.Handle().Hidden() {
			t.Error("expected only the folder hidden")
		}
	})

	t.Run("hide all and show all", func(t *testing.T) {
		l := New(Options{})
		a, b := newProbe("a", nil), newProbe("b", nil)
		l.Add(a)
		l.Add(b)
		l.Hide(a)

		l.HideAll()
		if !a.Handle().Hidden() || !b.Handle().Hidden() {
			t.Fatal("expected every control hidden")
		}
		l.ShowAll()
		if a.Handle().Hidden() || b.Handle().Hidden() {
			t.Error("expected every control shown")
		}
	})
}

func TestUpdate(t *testing.T) {
	obj := &point{X: 1}
	l := New(Options{})
	a := newProbe("a", obj, "x")
	l.Add(a)
	f := l.AddFolder("f", FolderOptions{})
	b := newProbe("b", obj, "y")
	f.Add(b)

	obj.X, obj.Y = 8, 9
	l.Update()

	if a.shown != 8 || b.shown != 9 {
		t.Errorf("expected refreshed values, got %v and %v", a.shown, b.shown)
	}
}
