package ui

import "sync"

// DefaultStyleID identifies the palette registered by [NewModel] when none is named.
const DefaultStyleID = "lacery"

var (
	stylesMu sync.Mutex
	injected = make(map[string]*Palette)
)

// InjectStyles registers p under id once per process. It reports whether this call did the
// registration; later calls with the same id keep the first palette.
func InjectStyles(id string, p *Palette) bool {
	stylesMu.Lock()
	defer stylesMu.Unlock()

	if _, ok := injected[id]; ok {
		return false
	}
	injected[id] = p
	return true
}

// Styles returns the palette registered under id.
func Styles(id string) (*Palette, bool) {
	stylesMu.Lock()
	defer stylesMu.Unlock()

	p, ok := injected[id]
	return p, ok
}
