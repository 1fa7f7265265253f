// Package app provides the orchestration layer for the Skylark player.
//
// # Overview
//
// This package wires together configuration, user preferences, terminal
// handling, and the playback session into one complete run. It serves as
// the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load player configuration from ~/.config/skylark/config.toml
//  2. Load user preferences (theme, volume step) from prefs.toml
//  3. Switch the terminal into raw mode when stdin is interactive
//  4. Build the overlay renderer against the chosen theme
//  5. Hand everything to session.Run, which owns the engine lifecycle
//  6. Restore the terminal and surface the session's exit code
//
// # Error Handling
//
// Startup failures (bad config, missing URL) return ExitStartFailure
// before the engine is ever spawned. Everything after spawn is the
// session's business: its exit code passes through unchanged, and after
// a failed run the tail of the session log is echoed to stderr.
//
// Raw-mode failure is deliberately not fatal. A pipe or dumb terminal
// still gets audio; it just does not get the status panel.
//
// # Favorites
//
// The in-memory favorites set lives here because persistence is owned by
// the station directory, not the player. The session only needs Contains
// and Toggle.
package app
