package mpv

import (
	"encoding/json"
	"testing"
	"time"
)

// scriptConn feeds canned chunks to the decoder, one per Receive call.
type scriptConn struct {
	chunks [][]byte
	sent   [][]byte
	closed bool
}

func (s *scriptConn) Send(b []byte) error {
	if s.closed {
		return ErrChannelClosed
	}
	dup := make([]byte, len(b))
	copy(dup, b)
	s.sent = append(s.sent, dup)
	return nil
}

func (s *scriptConn) Receive(timeout time.Duration) ([]byte, error) {
	if len(s.chunks) == 0 {
		if s.closed {
			return nil, ErrChannelClosed
		}
		return nil, ErrReceiveTimeout
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return chunk, nil
}

func (s *scriptConn) Close() error {
	s.closed = true
	return nil
}

func TestEncodeEnvelope_RoundTrip(t *testing.T) {
	raw, err := encodeEnvelope(7, []any{"get_property", "volume"})
	if err != nil {
		t.Fatalf("encodeEnvelope returned error: %v", err)
	}
	if raw[len(raw)-1] != '\n' {
		t.Fatalf("envelope not newline-terminated: %q", raw)
	}
	var decoded struct {
		RequestID int64 `json:"request_id"`
		Command   []any `json:"command"`
	}
	if err := json.Unmarshal(raw[:len(raw)-1], &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.RequestID != 7 {
		t.Fatalf("request_id = %d, want 7", decoded.RequestID)
	}
	if len(decoded.Command) != 2 || decoded.Command[0] != "get_property" || decoded.Command[1] != "volume" {
		t.Fatalf("command = %v, want [get_property volume]", decoded.Command)
	}
}

func TestEncodeEnvelope_FireAndForgetOmitsRequestID(t *testing.T) {
	raw, err := encodeEnvelope(0, []any{"cycle", "pause"})
	if err != nil {
		t.Fatalf("encodeEnvelope returned error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, present := decoded["request_id"]; present {
		t.Fatalf("request_id present in fire-and-forget envelope: %s", raw)
	}
}

func TestDecoder_FrameSplitAcrossReceives(t *testing.T) {
	conn := &scriptConn{chunks: [][]byte{
		[]byte(`{"request_id":3,"da`),
		[]byte(`ta":42,"error":"success"}` + "\n"),
	}}
	dec := NewDecoder(conn)
	msg, err := dec.Next(time.Second)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if !msg.Matches(3) {
		t.Fatalf("message does not match request 3: %+v", msg)
	}
	v, ok := msg.DataValue()
	if !ok || v != float64(42) {
		t.Fatalf("DataValue = %v, %v, want 42", v, ok)
	}
}

func TestDecoder_TwoFramesInOneChunk(t *testing.T) {
	conn := &scriptConn{chunks: [][]byte{
		[]byte(`{"event":"playback-restart"}` + "\n" + `{"request_id":9,"data":true,"error":"success"}` + "\n"),
	}}
	dec := NewDecoder(conn)

	first, err := dec.Next(time.Second)
	if err != nil {
		t.Fatalf("first Next returned error: %v", err)
	}
	if !first.IsEvent() || first.Event != "playback-restart" {
		t.Fatalf("first = %+v, want playback-restart event", first)
	}

	second, err := dec.Next(time.Second)
	if err != nil {
		t.Fatalf("second Next returned error: %v", err)
	}
	if !second.Matches(9) {
		t.Fatalf("second = %+v, want response for 9", second)
	}
}

func TestDecoder_MalformedLineIsNoMessage(t *testing.T) {
	conn := &scriptConn{chunks: [][]byte{
		[]byte("{not json at all\n"),
	}}
	dec := NewDecoder(conn)
	if _, err := dec.Next(50 * time.Millisecond); err != ErrReceiveTimeout {
		t.Fatalf("Next error = %v, want ErrReceiveTimeout", err)
	}
}

func TestDecoder_PartialFrameWithoutNewlineTimesOut(t *testing.T) {
	conn := &scriptConn{chunks: [][]byte{
		[]byte(`{"request_id":1`),
	}}
	dec := NewDecoder(conn)
	if _, err := dec.Next(50 * time.Millisecond); err != ErrReceiveTimeout {
		t.Fatalf("Next error = %v, want ErrReceiveTimeout", err)
	}
	// The partial frame must survive in the buffer for the next call.
	conn.chunks = [][]byte{[]byte(`,"data":5,"error":"success"}` + "\n")}
	msg, err := dec.Next(time.Second)
	if err != nil {
		t.Fatalf("Next after completion returned error: %v", err)
	}
	if !msg.Matches(1) {
		t.Fatalf("message = %+v, want response for 1", msg)
	}
}

func TestDecoder_ClosedChannelSurfaces(t *testing.T) {
	conn := &scriptConn{}
	conn.closed = true
	dec := NewDecoder(conn)
	if _, err := dec.Next(50 * time.Millisecond); err != ErrChannelClosed {
		t.Fatalf("Next error = %v, want ErrChannelClosed", err)
	}
}
