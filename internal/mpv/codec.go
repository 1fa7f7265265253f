package mpv

import (
	"bytes"
	"encoding/json"
	"time"
)

// The wire protocol is mpv's JSON IPC: UTF-8 text, one JSON object per
// line, newline-terminated, bidirectional over the same channel.

// outbound is the envelope for commands sent to the engine. RequestID is
// present only for queries that expect a reply.
type outbound struct {
	RequestID int64 `json:"request_id,omitempty"`
	Command   []any `json:"command"`
}

// Inbound is either a response (RequestID set, Data/Error meaningful) or an
// asynchronous event (no RequestID). Discrimination is by the presence of
// request_id, matching how mpv shapes both on the wire.
type Inbound struct {
	RequestID *int64          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Event     string          `json:"event"`
}

// IsEvent reports whether the envelope is an asynchronous event rather
// than a reply to a query.
func (m *Inbound) IsEvent() bool {
	return m.RequestID == nil
}

// Matches reports whether the envelope answers the query with id.
func (m *Inbound) Matches(id int64) bool {
	return m.RequestID != nil && *m.RequestID == id
}

// DataValue decodes the response payload into a generic value. Returns
// false when there is no payload or it cannot be decoded.
func (m *Inbound) DataValue() (any, bool) {
	if len(m.Data) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(m.Data, &v); err != nil {
		return nil, false
	}
	return v, true
}

func encodeEnvelope(id int64, command []any) ([]byte, error) {
	raw, err := json.Marshal(outbound{RequestID: id, Command: command})
	if err != nil {
		return nil, err
	}
	return append(raw, '\n'), nil
}

// Decoder frames inbound envelopes off a Conn. Partial frames that span
// receive boundaries stay in the buffer across calls; the decoder is the
// sole owner of that buffer.
type Decoder struct {
	conn Conn
	buf  bytes.Buffer
}

func NewDecoder(conn Conn) *Decoder {
	return &Decoder{conn: conn}
}

// Next returns the next complete inbound envelope, waiting at most timeout
// for bytes to arrive. Malformed lines and timeouts both surface as
// ErrReceiveTimeout; only a closed channel is reported as distinct so the
// caller can end the session.
func (d *Decoder) Next(timeout time.Duration) (*Inbound, error) {
	deadline := time.Now().Add(timeout)
	for {
		if line, ok := d.takeLine(); ok {
			msg, ok := decodeLine(line)
			if !ok {
				// Bad JSON on a complete line: drop it, report no message.
				return nil, ErrReceiveTimeout
			}
			return msg, nil
		}
		remain := time.Until(deadline)
		if remain <= 0 {
			return nil, ErrReceiveTimeout
		}
		chunk, err := d.conn.Receive(remain)
		if err != nil {
			return nil, err
		}
		d.buf.Write(chunk)
	}
}

func (d *Decoder) takeLine() ([]byte, bool) {
	raw := d.buf.Bytes()
	idx := bytes.IndexByte(raw, '\n')
	if idx < 0 {
		return nil, false
	}
	line := make([]byte, idx)
	copy(line, raw[:idx])
	d.buf.Next(idx + 1)
	return line, true
}

func decodeLine(line []byte) (*Inbound, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, false
	}
	var msg Inbound
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, false
	}
	return &msg, true
}
