// Package render maps decoded conversion events and tracker snapshots to
// terminal output: per-event status lines, an in-place progress bar, and
// the end-of-run banner with a chapter summary table.
//
// Rendering is deterministic for a given event and snapshot. Colour is
// applied only when the destination is a terminal (or forced on), and the
// progress line rewrites itself with a carriage return instead of
// appending.
package render
