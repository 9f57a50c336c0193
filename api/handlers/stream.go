package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/batepapo/chatroom-api/models"
)

// streamWriteTimeout bounds each fan-out write so a stalled client cannot
// wedge Publish and, with it, every join and send that calls it
const streamWriteTimeout = 5 * time.Second

// Hub fans appended messages out to connected websocket clients. Clients
// that fall behind are dropped rather than allowed to block a publish.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

// NewHub creates an empty stream hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and keeps the connection registered until the
// client goes away
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	zap.S().Infow("stream client connected", "clients", count)

	// the read loop only exists to notice the close
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish sends the message to every connected client. Safe on a nil hub so
// callers need no wiring in tests.
func (h *Hub) Publish(message models.Message) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(message)
	if err != nil {
		zap.S().Errorw("failed to marshal stream message", "error", err)
		return
	}

	// writes stay under the lock: gorilla connections allow one writer at a
	// time
	h.mu.Lock()
	var failed []*websocket.Conn
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			failed = append(failed, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range failed {
		h.drop(conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, open := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if open {
		conn.Close()
		zap.S().Debugw("stream client disconnected")
	}
}
