// Package mpv owns the playback control channel to the external engine.
//
// # Overview
//
// skylark never decodes audio itself; it spawns a system-installed mpv and
// drives it over mpv's JSON IPC protocol. This package contains everything
// on that boundary: the platform transport, the line-delimited envelope
// codec, request/response correlation, the process lifecycle, and the
// per-tick state sampler.
//
// # Package Structure
//
//   - transport.go: Conn interface, endpoint addressing, connect-with-retry
//   - transport_unix.go / transport_windows.go: unix socket vs named pipe
//   - codec.go: newline-delimited JSON envelope framing and parsing
//   - client.go: request correlation and fire-and-forget commands
//   - process.go: spawn flags, polite-quit/forced-kill, exit reaping
//   - sample.go: property battery assembling a PlaybackState snapshot
//   - state.go: the PlaybackState value type
//
// # Failure Model
//
// Every IPC boundary returns an optional rather than an error: a missed
// property degrades one snapshot field, a malformed or partial frame is a
// missed tick, and only a closed channel or a dead process ends the
// session. Nothing in this package panics or aborts the host application.
//
// # Concurrency
//
// The client is deliberately not re-entrant. The session loop issues one
// query at a time and each query drains its own response before returning;
// event frames seen along the way are skipped, not queued.
package mpv
