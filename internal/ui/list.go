package ui

import (
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = presetItem{}

// PresetSource lists and loads named presets for the picker.
type PresetSource interface {
	Names() ([]string, error)
	// Load writes the named preset into the host object. The model refreshes the panel after.
	Load(name string) error
}

// presetItem wraps a preset name to implement [list.Item].
type presetItem struct {
	name string
}

func (i presetItem) FilterValue() string { return i.name }
func (i presetItem) Title() string       { return i.name }
func (i presetItem) Description() string { return "" }

func newPresetList(names []string, width, height int) list.Model {
	if width <= 0 {
		width = 48
	}
	if height <= 4 {
		height = 12
	}

	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = presetItem{name: name}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items, delegate, width, height)
	l.Title = "Presets"
	l.SetShowHelp(false)
	return l
}
