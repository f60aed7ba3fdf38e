// internal/websocket/hub.go
// Fleet-status hub: broadcasts server-status snapshots and admin-triggered
// events to every connected admin viewer. Additive to the admin HTTP API,
// never used for rendezvous client traffic.

package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains connected admin viewers and fans broadcasts out to all of
// them
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message

	logger *log.Logger
	mu     sync.RWMutex
}

// Message is one fleet-status event pushed to admin viewers
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub creates a new fleet-status hub
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop; call it in its own goroutine
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("websocket: failed to marshal fleet message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			delete(h.clients, client)
			client.close()
		}
	}
}

// Broadcast pushes an event of the given type to every connected viewer
func (h *Hub) Broadcast(messageType string, data interface{}) {
	h.broadcast <- &Message{Type: messageType, Data: data}
}
