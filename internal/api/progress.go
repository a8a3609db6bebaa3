package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jmlee/dcalab/internal/sweep"
	"github.com/jmlee/dcalab/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type progressClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ProgressHub streams sweep progress events to websocket clients.
// Slow clients are dropped rather than allowed to stall a sweep.
type ProgressHub struct {
	logger  *logger.Logger
	clients map[*progressClient]bool
	mu      sync.RWMutex
}

func NewProgressHub(log *logger.Logger) *ProgressHub {
	return &ProgressHub{
		logger:  log,
		clients: make(map[*progressClient]bool),
	}
}

// ServeHTTP upgrades the connection and keeps it subscribed until the
// client disconnects
func (h *ProgressHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade websocket")
		return
	}

	client := &progressClient{
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	h.logger.Debug("Progress client connected")

	go h.writePump(client)
	h.readPump(client)
}

// Publish fans a progress event out to every connected client.
// Safe to call from sweep workers.
func (h *ProgressHub) Publish(event sweep.Progress) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Buffer full, the write pump will notice the close
		}
	}
}

func (h *ProgressHub) readPump(c *progressClient) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		close(c.send)
		h.mu.Unlock()
		c.conn.Close()
		h.logger.Debug("Progress client disconnected")
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *ProgressHub) writePump(c *progressClient) {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
