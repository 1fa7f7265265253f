//go:build windows

package mpv

// mpv on Windows exits before creating the pipe when handed a URL on the
// command line without a persistent input stream, so the URL is loaded
// over the channel instead.
func platformSpawnMode() SpawnMode {
	return IdleLoadMode
}
