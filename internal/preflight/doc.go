// Package preflight verifies external requirements before a conversion
// run is launched: the tool binary must resolve and be executable, and
// the configured log directory must be writable. Failing early here gives
// a clearer message than a raw spawn error.
package preflight
