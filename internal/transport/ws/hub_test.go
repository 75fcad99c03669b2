package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestConn(id string) *Connection {
	return &Connection{ID: id, Send: make(chan []byte, 16)}
}

func recvMessage(t *testing.T, conn *Connection) *Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("invalid frame: %v", err)
		}
		return &msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHubBroadcastAllReachesEveryConnection(t *testing.T) {
	h := NewHub()
	c1 := newTestConn("c1")
	c2 := newTestConn("c2")
	h.Register(c1)
	h.Register(c2)

	h.BroadcastAll("timeUpdate", map[string]int{"secondsRemaining": 42})

	for _, conn := range []*Connection{c1, c2} {
		msg := recvMessage(t, conn)
		if msg.Type != "timeUpdate" {
			t.Fatalf("type = %q, want timeUpdate", msg.Type)
		}
		var payload struct {
			SecondsRemaining int `json:"secondsRemaining"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.Fatalf("payload: %v", err)
		}
		if payload.SecondsRemaining != 42 {
			t.Fatalf("secondsRemaining = %d, want 42", payload.SecondsRemaining)
		}
	}
}

func TestHubSendToIsTargeted(t *testing.T) {
	h := NewHub()
	c1 := newTestConn("c1")
	c2 := newTestConn("c2")
	h.Register(c1)
	h.Register(c2)

	h.SendTo("c1", "kickedOut", nil)
	h.BroadcastAll("marker", nil)

	if msg := recvMessage(t, c1); msg.Type != "kickedOut" {
		t.Fatalf("c1 first message = %q, want kickedOut", msg.Type)
	}
	// c2 must not have seen the targeted message; its first frame is
	// the marker broadcast.
	if msg := recvMessage(t, c2); msg.Type != "marker" {
		t.Fatalf("c2 first message = %q, want marker", msg.Type)
	}
}

func TestHubSendToUnknownConnectionIsNoop(t *testing.T) {
	h := NewHub()
	c1 := newTestConn("c1")
	h.Register(c1)

	h.SendTo("ghost", "kickedOut", nil)
	h.BroadcastAll("marker", nil)

	if msg := recvMessage(t, c1); msg.Type != "marker" {
		t.Fatalf("first message = %q, want marker", msg.Type)
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := NewHub()
	c1 := newTestConn("c1")
	h.Register(c1)
	h.Unregister(c1)

	select {
	case _, ok := <-c1.Send:
		if ok {
			t.Fatal("received data instead of close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed after unregister")
	}

	// Broadcasting after the connection is gone must not panic.
	h.BroadcastAll("marker", nil)
}

func TestHubUnregisterTwiceIsSafe(t *testing.T) {
	h := NewHub()
	c1 := newTestConn("c1")
	h.Register(c1)
	h.Unregister(c1)
	h.Unregister(c1)
}

func TestHubOmitsEmptyPayload(t *testing.T) {
	h := NewHub()
	c1 := newTestConn("c1")
	h.Register(c1)

	h.BroadcastAll("pollReset", nil)

	msg := recvMessage(t, c1)
	if msg.Type != "pollReset" {
		t.Fatalf("type = %q", msg.Type)
	}
	if len(msg.Payload) != 0 {
		t.Fatalf("payload = %s, want empty", msg.Payload)
	}
}
