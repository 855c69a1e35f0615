package ui

import tea "github.com/charmbracelet/bubbletea"

var (
	_ tea.Msg = StatusMsg{}
	_ tea.Msg = presetsLoadedMsg{}
)

// StatusMsg replaces the status line under the panel. A non-nil Err is shown instead of Text.
type StatusMsg struct {
	Text string
	Err  error
}

// presetsLoadedMsg carries the preset names fetched for the picker.
type presetsLoadedMsg struct {
	names []string
	err   error
}
