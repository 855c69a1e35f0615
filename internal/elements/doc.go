// Package elements provides the concrete terminal controls that plug into a [lace.Lace] registry.
//
// Every control embeds [lace.Base], reads and writes its host object through the binding
// package, and calls Changed exactly once per user edit. Update re-reads the host object and
// never announces a change, which keeps cross-linked peers from echoing edits back.
//
// Controls draw themselves with lipgloss through [Control.Render] and interactive ones accept
// keyboard input through [KeyHandler.HandleKey], which reports whether the key was consumed
// along with an optional follow-up [tea.Cmd]. Each control also exposes programmatic edit
// helpers (Toggle, SetText, Select, ...) that behave exactly like the matching user input.
package elements
