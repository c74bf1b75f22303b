package telemetry

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"field-planner/field"
	"field-planner/logging"
)

const clientBuffer = 256

// Message is the websocket payload for one record.
type Message struct {
	Key    string        `json:"key"`
	Points []field.Point `json:"points"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts every record to connected websocket viewers. A viewer that
// connects late first receives the latest value of every key. Viewers that fall
// behind by more than the send buffer are disconnected.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  map[string][]byte
	closed  bool
}

// NewHub returns a hub with no viewers.
func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   logger,
		clients:  make(map[*client]struct{}),
		latest:   make(map[string][]byte),
	}
}

// RecordPoints encodes the record and queues it for every viewer.
func (h *Hub) RecordPoints(key string, points []field.Point) {
	if points == nil {
		points = []field.Point{}
	}
	msg, err := json.Marshal(Message{Key: key, Points: points})
	if err != nil {
		h.logger.Warnw("failed to encode telemetry", "key", key, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest[key] = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warnw("dropping slow telemetry viewer", "remote", c.conn.RemoteAddr().String())
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and serves the viewer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	keys := make([]string, 0, len(h.latest))
	for k := range h.latest {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		select {
		case c.send <- h.latest[k]:
		default:
		}
	}
	h.mu.Unlock()
	h.logger.Debugw("telemetry viewer connected", "remote", conn.RemoteAddr().String())

	go h.writer(c)

	// Viewers never send anything meaningful; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	h.logger.Debugw("telemetry viewer disconnected", "remote", conn.RemoteAddr().String())
}

func (h *Hub) writer(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Close disconnects every viewer and stops accepting records.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}
