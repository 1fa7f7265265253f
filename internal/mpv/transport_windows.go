//go:build windows

package mpv

import (
	"time"

	"golang.org/x/sys/windows"
)

func platformSocketPath() string {
	return `\\.\pipe\skylark-mpv`
}

// pipeConn is a duplex named pipe opened without buffering. The handle has
// no native read timeout, so Receive peeks the available byte count in a
// short sleep loop before committing to a blocking read.
type pipeConn struct {
	h windows.Handle
}

func dial(path string, timeout time.Duration) (Conn, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	for {
		h, err := windows.CreateFile(
			p,
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			0,
			nil,
			windows.OPEN_EXISTING,
			0,
			0,
		)
		if err == nil {
			return &pipeConn{h: h}, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func (p *pipeConn) Send(b []byte) error {
	var written uint32
	if err := windows.WriteFile(p.h, b, &written, nil); err != nil {
		return ErrChannelClosed
	}
	return nil
}

func (p *pipeConn) Receive(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for {
		var avail uint32
		if err := windows.PeekNamedPipe(p.h, nil, 0, nil, &avail, nil); err != nil {
			return nil, ErrChannelClosed
		}
		if avail > 0 {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrReceiveTimeout
		}
		time.Sleep(20 * time.Millisecond)
	}
	buf := make([]byte, 4096)
	var read uint32
	if err := windows.ReadFile(p.h, buf, &read, nil); err != nil {
		return nil, ErrChannelClosed
	}
	if read == 0 {
		return nil, ErrChannelClosed
	}
	return buf[:read], nil
}

func (p *pipeConn) Close() error {
	return windows.CloseHandle(p.h)
}
