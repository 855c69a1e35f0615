package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the panel.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	nextTab  key.Binding
	activate key.Binding
	folder   key.Binding
	presets  key.Binding
	back     key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		nextTab:  key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab/]", "next tab")),
		activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "activate")),
		folder:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "toggle folder")),
		presets:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "presets")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.nextTab},
		{k.activate, k.folder, k.presets},
		{k.back, k.help, k.quit},
	}
}
