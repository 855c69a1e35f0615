// Package lace keeps several controls bound to the same host object field in sync.
//
// Every control satisfies [Element]: it reports the host object it edits ([Element.Obj]) and
// the keys it reads and writes ([Element.Keys]), refreshes itself from the host object on
// [Element.Update], and announces user edits through [Base.Changed].
//
// The [Lace] registry owns the top-level controls. Whenever a control joins the tree it is
// cross-linked with every other registered control bound to the same object and at least one
// shared key: an edit on either side then calls Update on the other. Links are recorded per
// pair with explicit [Callback] handles, so [Lace.Disconnect] removes exactly what
// [Lace.Connect] installed.
//
// Controls can be nested in scope containers:
//   - [Group] : a plain ordered region that bubbles child edits up as its own change
//   - [Folder] : a collapsible region with an open flag
//   - [Tab] : named [TabPanel] regions with a select/deselect state machine
//
// Containers never take part in cross-linking themselves ([Element.Binds] is false); only
// their leaf descendants do. Propagation is synchronous and eager. Update must never call
// Changed, otherwise two linked controls would recurse into each other.
package lace
