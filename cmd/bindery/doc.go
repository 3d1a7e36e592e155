// Package main hosts the bindery CLI entrypoint and command graph.
//
// The Cobra-based command tree forwards trailing arguments to the
// audible-util conversion tool, supervises its machine-readable output
// stream, and mirrors its exit code. Subcommands cover replaying captured
// event streams and configuration scaffolding.
//
// Keep this package lean: decoding, state tracking, rendering, and
// process supervision live in the internal packages; commands only wire
// them together.
package main
