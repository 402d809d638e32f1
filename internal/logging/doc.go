// Package logging assembles the structured slog loggers used by the tmdb CLI.
//
// It owns the console and JSON handlers, level parsing, and the optional
// rotating log file, and exposes context-aware helpers so reconciler code can
// tag every line with the session correlation id, show id, and season.
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
