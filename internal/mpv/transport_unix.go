//go:build !windows

package mpv

import (
	"errors"
	"io"
	"net"
	"os"
	"time"
)

func platformSocketPath() string {
	return runtimeDirSocket("skylark-mpv.sock")
}

// unixConn wraps the stream socket. The native read deadline supplies the
// per-call receive timeout.
type unixConn struct {
	c net.Conn
}

func dial(path string, timeout time.Duration) (Conn, error) {
	c, err := net.DialTimeout("unix", path, timeout)
	if err != nil {
		return nil, err
	}
	return &unixConn{c: c}, nil
}

func (u *unixConn) Send(b []byte) error {
	if _, err := u.c.Write(b); err != nil {
		return ErrChannelClosed
	}
	return nil
}

func (u *unixConn) Receive(timeout time.Duration) ([]byte, error) {
	if err := u.c.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, ErrChannelClosed
	}
	buf := make([]byte, 4096)
	n, err := u.c.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, ErrReceiveTimeout
		}
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed) {
			return nil, ErrChannelClosed
		}
		return nil, ErrChannelClosed
	}
	return nil, ErrReceiveTimeout
}

func (u *unixConn) Close() error {
	return u.c.Close()
}
