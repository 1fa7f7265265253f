package mpv

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Conn is the duplex byte channel to mpv's IPC endpoint. On POSIX it is a
// unix-domain stream socket, on Windows a named pipe; callers never branch
// on platform.
type Conn interface {
	// Send writes raw bytes to the channel.
	Send(b []byte) error
	// Receive returns whatever bytes are available within timeout.
	// ErrReceiveTimeout means nothing arrived; ErrChannelClosed means the
	// engine went away.
	Receive(timeout time.Duration) ([]byte, error)
	Close() error
}

var (
	ErrReceiveTimeout = errors.New("mpv: receive timed out")
	ErrChannelClosed  = errors.New("mpv: channel closed")
)

const (
	// The engine creates the endpoint asynchronously after spawn, so the
	// first connect attempts are expected to fail. 40 x 250ms gives a
	// ceiling of roughly ten seconds before the caller must abandon.
	DefaultConnectAttempts = 40
	DefaultConnectDelay    = 250 * time.Millisecond
	defaultDialTimeout     = 400 * time.Millisecond
)

// SocketPath returns the control-endpoint address for the current platform:
// $XDG_RUNTIME_DIR/skylark-mpv.sock (or /tmp) on POSIX, a named pipe on
// Windows.
func SocketPath() string {
	return platformSocketPath()
}

// Connect polls the endpoint until it becomes connectable or the attempt
// budget runs out. The per-attempt delay is paid before each dial so the
// engine has a moment to create the endpoint.
func Connect(path string, attempts int, delay time.Duration) (Conn, error) {
	if attempts <= 0 {
		attempts = DefaultConnectAttempts
	}
	if delay <= 0 {
		delay = DefaultConnectDelay
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		time.Sleep(delay)
		conn, err := dial(path, defaultDialTimeout)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("connect %s after %d attempts: %w", path, attempts, lastErr)
}

func runtimeDirSocket(name string) string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir + "/" + name
	}
	return "/tmp/" + name
}
