// internal/websocket/handlers.go
// HTTP-to-WebSocket upgrade for the admin fleet-status stream

package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleConnection upgrades an already api-key-authenticated admin request
// into a fleet-status viewer connection
func HandleConnection(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket: failed to upgrade fleet viewer: %v", err)
			return
		}

		client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256)}
		hub.register <- client
		client.send <- welcomeMessage()

		go client.writePump()
		go client.readPump()
	}
}
