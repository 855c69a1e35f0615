// Package ui renders a [lace.Lace] registry as an interactive terminal panel using bubbletea's
// Elm architecture.
//
// The [Model] walks the registry on every frame, skipping hidden controls, so panels edited
// between frames (folders opened, tabs switched, controls hidden) are always drawn as they
// are. Focus moves between visible controls that accept keys and folder headers. Keys
// the focused control does not consume fall back to panel navigation:
//
//   - up/down : move focus
//   - tab, ] : show the next tab of the enclosing (or first) tab container
//   - enter/space : activate the focused control, or toggle a focused folder
//   - o : toggle the focused or enclosing folder
//   - p : pick a preset from the configured [PresetSource] (a bubbles list)
//   - ? : full help, q/ctrl+c : quit
//
// Styles are registered once per process with [InjectStyles] and looked up with [Styles].
package ui
