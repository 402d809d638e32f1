// Package services defines shared helpers consumed by the TMDb automation
// packages and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp the session correlation id and the show or
//     season being edited, so log lines can be tied back to one invocation.
//   - Structured error markers plus the Wrap helper that classify failures
//     (not found, validation, authentication, configuration, browser) and map
//     them onto process exit codes.
package services
