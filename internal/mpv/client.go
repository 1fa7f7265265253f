package mpv

import (
	"sync/atomic"
	"time"
)

const (
	// How many inbound envelopes a query will sift through looking for its
	// own response before giving up. Event frames interleave freely with
	// responses, so a handful of skips is normal.
	defaultQueryAttempts = 12
	defaultRecvTimeout   = 400 * time.Millisecond
)

// Client correlates queries with responses over a shared line-oriented
// channel. It is not re-entrant: one outstanding query at a time, which is
// all the cooperative session loop ever issues.
type Client struct {
	conn Conn
	dec  *Decoder

	nextID        atomic.Int64
	queryAttempts int
	recvTimeout   time.Duration

	endReached bool
	closed     bool
}

// NewClient wraps an established control channel.
func NewClient(conn Conn) *Client {
	c := &Client{
		conn:          conn,
		dec:           NewDecoder(conn),
		queryAttempts: defaultQueryAttempts,
		recvTimeout:   defaultRecvTimeout,
	}
	// Seed from the clock so identifiers do not repeat across sessions
	// talking to a long-lived engine.
	c.nextID.Store(time.Now().UnixNano() % (1 << 31))
	return c
}

// Command sends a fire-and-forget command envelope; no reply is expected
// and none is read.
func (c *Client) Command(args ...any) error {
	raw, err := encodeEnvelope(0, args)
	if err != nil {
		return err
	}
	if err := c.conn.Send(raw); err != nil {
		c.closed = true
		return err
	}
	return nil
}

// GetProperty issues a get_property query and drains inbound envelopes
// until the matching response arrives. Unrelated events and stale
// responses are discarded. A miss returns (nil, false); it must never
// abort the caller's tick.
func (c *Client) GetProperty(name string) (any, bool) {
	if c.closed {
		return nil, false
	}
	id := c.nextID.Add(1)
	raw, err := encodeEnvelope(id, []any{"get_property", name})
	if err != nil {
		return nil, false
	}
	if err := c.conn.Send(raw); err != nil {
		c.closed = true
		return nil, false
	}
	for i := 0; i < c.queryAttempts; i++ {
		msg, err := c.dec.Next(c.recvTimeout)
		if err == ErrChannelClosed {
			c.closed = true
			return nil, false
		}
		if err != nil {
			return nil, false
		}
		if msg.IsEvent() {
			if msg.Event == "end-file" {
				c.endReached = true
			}
			continue
		}
		if !msg.Matches(id) {
			continue
		}
		if msg.Error != "" && msg.Error != "success" {
			return nil, false
		}
		return msg.DataValue()
	}
	return nil, false
}

// ShowText asks the engine to flash a transient OSD message. Best effort.
func (c *Client) ShowText(text string, duration time.Duration) {
	_ = c.Command("show-text", text, int(duration.Milliseconds()))
}

// LoadFile replaces the current media source. Used after connect in
// idle-then-load mode.
func (c *Client) LoadFile(url string) error {
	return c.Command("loadfile", url, "replace")
}

// Quit asks the engine to exit politely.
func (c *Client) Quit() error {
	return c.Command("quit")
}

// TakeEndReached reports whether an end-file event was observed while
// draining responses, clearing the flag.
func (c *Client) TakeEndReached() bool {
	v := c.endReached
	c.endReached = false
	return v
}

// Closed reports whether the channel has been observed closed.
func (c *Client) Closed() bool {
	return c.closed
}

func (c *Client) Close() error {
	c.closed = true
	return c.conn.Close()
}
