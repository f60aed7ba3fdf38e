package websocket

import (
	"log"
	"os"
	"testing"
)

func newTestHub() *Hub {
	return NewHub(log.New(os.Stderr, "", 0))
}

func newTestClient() *Client {
	return &Client{send: make(chan []byte, 4)}
}

func TestBroadcastMessageDeliversToEveryClient(t *testing.T) {
	h := newTestHub()
	a := newTestClient()
	b := newTestClient()
	h.clients[a] = true
	h.clients[b] = true

	h.broadcastMessage(&Message{Type: "status", Data: "ok"})

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.send:
			if len(data) == 0 {
				t.Fatalf("expected a non-empty payload")
			}
		default:
			t.Fatalf("expected a message queued for every client")
		}
	}
}

func TestBroadcastMessageEvictsFullClient(t *testing.T) {
	h := newTestHub()
	full := &Client{send: make(chan []byte)} // unbuffered, so the first send blocks
	h.clients[full] = true

	h.broadcastMessage(&Message{Type: "status", Data: "ok"})

	if _, stillPresent := h.clients[full]; stillPresent {
		t.Fatalf("expected a client with a full send buffer to be evicted")
	}
}

func TestBroadcastEnqueuesOntoChannel(t *testing.T) {
	h := newTestHub()
	h.Broadcast("status", "ok")

	select {
	case msg := <-h.broadcast:
		if msg.Type != "status" {
			t.Fatalf("msg.Type = %q, want status", msg.Type)
		}
	default:
		t.Fatalf("expected Broadcast to enqueue a message onto the broadcast channel")
	}
}
