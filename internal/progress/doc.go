// Package progress maintains the run-scoped state derived from the
// conversion event stream: chapter totals, the active chapter, timing, and
// the final success flag.
//
// The tracker only moves forward; decodable events that violate expected
// ordering or bounds are reported as anomalies for logging rather than
// rejected, so a misbehaving tool degrades the display instead of aborting
// the run. One tracker instance covers exactly one child-process lifecycle.
package progress
