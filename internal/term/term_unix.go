//go:build !windows

package term

import (
	"os"
	"time"

	xterm "github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"
)

func enterRaw() (func() error, error) {
	fd := os.Stdin.Fd()
	saved, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	restored := false
	return func() error {
		if restored {
			return nil
		}
		restored = true
		return xterm.Restore(fd, saved)
	}, nil
}

func getSize() (int, int, error) {
	return xterm.GetSize(os.Stdout.Fd())
}

// readRune polls stdin for readability so the read itself never blocks
// past the timeout.
func readRune(timeout time.Duration) (rune, bool) {
	fds := []unix.PollFd{{Fd: int32(os.Stdin.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil || n == 0 {
		return 0, false
	}
	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		return 0, false
	}
	return rune(buf[0]), true
}
