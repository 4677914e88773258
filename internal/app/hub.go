package app

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"TempMon/internal/model"
	"TempMon/internal/parser"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// writeWait bounds how long a broadcast may block on one client before
// the client is dropped. Publish runs on the sampling path, so a stalled
// browser must never hold it up.
const writeWait = 2 * time.Second

// Hub broadcasts accepted samples to websocket clients and remembers the
// most recent one for /api/latest.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	last    *model.Sample
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: map[*websocket.Conn]bool{}}
}

// Publish implements monitor.LiveSink: it stores the sample as latest and
// broadcasts it as a CSV line to all connected clients.
func (h *Hub) Publish(s model.Sample) {
	line := parser.EncodeSample(s)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &s
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			delete(h.clients, c)
			_ = c.Close()
		}
	}
}

// Latest returns the most recently published sample, or nil.
func (h *Hub) Latest() *model.Sample {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// ServeWS upgrades the request and registers the client for broadcasts.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			if err := conn.Close(); err != nil {
				log.Printf("[app] warning: failed to close websocket: %v", err)
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
