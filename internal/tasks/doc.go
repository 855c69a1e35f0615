// Package tasks runs long operations over many presets with progress reporting.
//
// [Engine.BulkExport] loads each named preset into a freshly built panel, snapshots it and
// writes one export file per preset from a pool of workers. Preset loads are throttled with a
// token bucket limiter and every step is reported on an optional [ProgressUpdate] channel
// that is never blocked on.
package tasks
