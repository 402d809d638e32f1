// Command tmdb posts TV show seasons and episodes to TMDb by driving the
// website's edit forms in Chromium.
//
// Records are read from JSON or TOML files (or flags for a single season),
// reconciled against what TMDb already lists, and reported one line per
// record followed by a summary table.
package main
