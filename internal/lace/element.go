package lace

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/lacery/internal/shared"
)

// Size is the presentation hint passed down by containers.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return fmt.Sprintf("Size(%d)", int(s))
	}
}

// ParseSize maps a size name to a [Size].
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "small":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large":
		return SizeLarge, nil
	default:
		return SizeSmall, fmt.Errorf("%w: size %q", shared.ErrInvalidConfig, s)
	}
}

// Element is the capability contract every control satisfies.
type Element interface {
	Label() string
	// Obj returns the host object this control edits, nil for structural controls.
	Obj() any
	// Keys returns the field names read and written on Obj. Fixed at construction.
	Keys() []string
	// Update pulls the current values from the host object into the presentation.
	// It must not call Changed.
	Update()
	SetSize(Size)
	// Binds reports whether the control takes part in cross-linking. Containers opt out.
	Binds() bool
	// OnChange replaces the user-facing change callback.
	OnChange(fn func())
	RegisterUpdateCallback(cb *Callback)
	DeregisterUpdateCallback(cb *Callback)
	Handle() *Handle
}

// Container is an element that owns an ordered set of children.
type Container interface {
	Element
	Elements() []Element
}

// Callback is a registration handle for an update callback.
//
// Deregistration compares handles, never function values.
type Callback struct {
	fn func()
}

// NewCallback wraps fn in a fresh handle.
func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Call invokes the wrapped function.
func (c *Callback) Call() {
	if c != nil && c.fn != nil {
		c.fn()
	}
}

// Base carries the change plumbing shared by every control. Embed it and call [Base.Changed]
// after every user edit.
type Base struct {
	label    string
	handle   *Handle
	onChange func()
	updates  []*Callback
}

// NewBase returns a Base with the given label and initial display mode.
func NewBase(label string, d Display) Base {
	return Base{label: label, handle: NewHandle(d)}
}

func (b *Base) Label() string { return b.label }

// Binds is true for every control embedding Base unless the control overrides it.
func (b *Base) Binds() bool { return true }

// Handle returns the control's visual handle, allocating one for zero-value bases.
func (b *Base) Handle() *Handle {
	if b.handle == nil {
		b.handle = NewHandle(DisplayDefault)
	}
	return b.handle
}

// OnChange replaces the change callback. The last registration wins.
func (b *Base) OnChange(fn func()) {
	b.onChange = fn
}

// RegisterUpdateCallback appends cb to the update list. Nil handles are ignored.
func (b *Base) RegisterUpdateCallback(cb *Callback) {
	if cb == nil {
		return
	}
	b.updates = append(b.updates, cb)
}

// DeregisterUpdateCallback removes the first occurrence of cb, if any.
func (b *Base) DeregisterUpdateCallback(cb *Callback) {
	if i := slices.Index(b.updates, cb); i >= 0 {
		b.updates = slices.Delete(b.updates, i, i+1)
	}
}

// UpdateCallbacks returns a copy of the registered update callbacks in registration order.
func (b *Base) UpdateCallbacks() []*Callback {
	return slices.Clone(b.updates)
}

// Changed runs the change callback and then every update callback in registration order.
//
// Controls call it once per user edit. It iterates over a snapshot, so callbacks may
// register or deregister during dispatch.
func (b *Base) Changed() {
	if b.onChange != nil {
		b.onChange()
	}
	for _, cb := range slices.Clone(b.updates) {
		cb.Call()
	}
}
