// Package supervise owns the conversion tool's process lifecycle: it
// launches the tool with the machine-readable flag, streams stdout
// line-by-line through the decode/track/render pipeline, captures stderr,
// and maps the child's exit status onto bindery's own exit code.
//
// Processing is a single synchronous loop; each line is decoded, applied
// to the tracker, and reported before the next line is read, so no
// locking is needed anywhere in the pipeline. Stderr drains concurrently
// into a capped in-memory buffer and is surfaced only when the child
// exits non-zero.
package supervise
