// Package term handles the controlling terminal: a scoped raw-mode guard
// and a non-blocking single-keystroke reader, portable across POSIX and
// the Windows console.
package term

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Key is a recognized control keystroke. Everything else a user can type
// maps to KeyNone and is ignored without error.
type Key int

const (
	KeyNone Key = iota
	KeyQuit
	KeyTogglePause
	KeyVolumeUp
	KeyVolumeDown
	KeyToggleMute
	KeyToggleFavorite
)

// Lookup maps a raw keystroke to its control action, case-insensitively.
func Lookup(r rune) Key {
	switch r {
	case 'q', 'Q':
		return KeyQuit
	case 'p', 'P':
		return KeyTogglePause
	case '+':
		return KeyVolumeUp
	case '-':
		return KeyVolumeDown
	case 'm', 'M':
		return KeyToggleMute
	case 'f', 'F':
		return KeyToggleFavorite
	}
	return KeyNone
}

// ReadKey waits at most timeout for a single keystroke on stdin and maps
// it. (KeyNone, false) means nothing arrived.
func ReadKey(timeout time.Duration) (Key, bool) {
	r, ok := readRune(timeout)
	if !ok {
		return KeyNone, false
	}
	return Lookup(r), true
}

// IsInteractive reports whether stdin is a terminal we may switch to raw
// mode.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// EnterRaw switches stdin to raw, unbuffered mode for the session. The
// returned restore func is safe to call on every exit path, including
// more than once.
func EnterRaw() (restore func() error, err error) {
	if !IsInteractive() {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	return enterRaw()
}

// Size returns the terminal width and height, with an 80x24 fallback when
// the size cannot be determined.
func Size() (width, height int) {
	w, h, err := getSize()
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
