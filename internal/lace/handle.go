package lace

// Display is the display mode of a visual handle.
type Display string

const (
	DisplayDefault Display = ""
	DisplayNone    Display = "none"
	DisplayBlock   Display = "block"
	DisplayInline  Display = "inline"
)

// Handle is the opaque visual handle parents attach, detach and toggle.
//
// The core only ever touches its display mode.
type Handle struct {
	display Display
	saved   *Display
}

// NewHandle returns a handle with the given initial display mode.
func NewHandle(d Display) *Handle {
	return &Handle{display: d}
}

// Display returns the current display mode.
func (h *Handle) Display() Display { return h.display }

// SetDisplay replaces the current display mode.
func (h *Handle) SetDisplay(d Display) { h.display = d }

// Hidden reports whether the handle is currently not displayed.
func (h *Handle) Hidden() bool { return h.display == DisplayNone }

// hide remembers the display mode in effect before the first hide and switches to none.
func (h *Handle) hide() {
	if h.saved == nil {
		d := h.display
		h.saved = &d
	}
	h.display = DisplayNone
}

// show restores the mode saved by hide. Without a prior hide it leaves the handle alone.
func (h *Handle) show() {
	if h.saved == nil {
		return
	}
	h.display = *h.saved
	h.saved = nil
}
