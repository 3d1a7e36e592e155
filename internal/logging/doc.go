// Package logging builds the slog loggers used across bindery.
//
// Diagnostic output (decode failures, protocol anomalies, supervisor
// lifecycle) goes through these loggers and stays separate from the
// rendered status display, which owns stdout. Console and JSON handlers
// are available; file output is appended when a log directory is
// configured.
package logging
