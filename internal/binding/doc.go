// Package binding reads and writes named fields on host objects.
//
// A host object is anything a control edits in place: a non-nil pointer to a struct, or a map
// keyed by strings. The pair (object, key) is a bound field. Controls never copy host objects;
// they hold the reference and go through [Get] and [Set] on every read and write, so the host
// object stays the single source of truth.
//
// Struct fields are addressed by their Go name or by a `lace:"name"` tag:
//
//	type Scene struct {
//		Exposure float64 `lace:"exposure"`
//		Title    string
//	}
//
// Object identity ([Same]) compares pointers and map headers, never values.
package binding
