// Package presets persists named snapshots of host object values in SQLite.
//
// A preset is captured from the keys a [lace.Lace] binds on one host object and can later be
// written back with [Store.Apply], after which the caller refreshes the panel with
// [lace.Lace.Update]. Sequence numbers give presets a stable creation order independent of
// their UUIDs; see [nextSequence].
//
// Key Types:
//   - [Store] : CRUD and suggestions over the presets table
//   - [Preset] : one named snapshot
package presets
