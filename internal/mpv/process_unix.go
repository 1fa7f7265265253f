//go:build !windows

package mpv

func platformSpawnMode() SpawnMode {
	return DirectMode
}
