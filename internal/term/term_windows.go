//go:build windows

package term

import (
	"os"
	"time"
	"unsafe"

	xterm "github.com/charmbracelet/x/term"
	"golang.org/x/sys/windows"
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

var (
	kernel32                          = windows.NewLazySystemDLL("kernel32.dll")
	procGetNumberOfConsoleInputEvents = kernel32.NewProc("GetNumberOfConsoleInputEvents")
	procReadConsoleInputW             = kernel32.NewProc("ReadConsoleInputW")
)

const keyEventType = 0x0001

// inputRecord mirrors INPUT_RECORD: a WORD event type, padding, then the
// 16-byte event union.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// keyEventRecord mirrors KEY_EVENT_RECORD.
type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

// keyRuneFromRecord extracts the keystroke from a console input record.
// Only key-down records carrying a character count; key-up, focus, menu
// and window events report false.
func keyRuneFromRecord(rec *inputRecord) (rune, bool) {
	if rec.eventType != keyEventType {
		return 0, false
	}
	ke := (*keyEventRecord)(unsafe.Pointer(&rec.event[0]))
	if ke.keyDown == 0 || ke.unicodeChar == 0 {
		return 0, false
	}
	return rune(ke.unicodeChar), true
}

// takeKeystroke drains the console input queue up to the first pending
// keystroke. Records that are not character key-downs are consumed and
// discarded so they cannot wedge the queue; (0, false) means nothing
// useful is pending right now.
func takeKeystroke(h windows.Handle) (rune, bool) {
	for {
		var pending uint32
		r, _, _ := procGetNumberOfConsoleInputEvents.Call(uintptr(h), uintptr(unsafe.Pointer(&pending)))
		if r == 0 || pending == 0 {
			return 0, false
		}

		var rec inputRecord
		var n uint32
		r, _, _ = procReadConsoleInputW.Call(uintptr(h), uintptr(unsafe.Pointer(&rec)), 1, uintptr(unsafe.Pointer(&n)))
		if r == 0 || n == 0 {
			return 0, false
		}
		if ch, ok := keyRuneFromRecord(&rec); ok {
			return ch, true
		}
	}
}

// readRune polls the console input queue in a short sleep loop, the
// console equivalent of the wait-then-read the POSIX side gets from
// poll(2). The queue check never commits to a blocking read, so stray
// key-up, focus and window records cannot stall the loop past its
// timeout.
func readRune(timeout time.Duration) (rune, bool) {
	h := windows.Handle(os.Stdin.Fd())
	deadline := time.Now().Add(timeout)
	for {
		if ch, ok := takeKeystroke(h); ok {
			return ch, true
		}
		if time.Now().After(deadline) {
			return 0, false
		}
		time.Sleep(20 * time.Millisecond)
	}
}
