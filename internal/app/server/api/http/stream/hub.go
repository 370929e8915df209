// Package stream pushes collection change events to connected clients over
// websockets, one fan-out set per uid.
package stream

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"
)

const writeWait = 10 * time.Second

// ChangeEvent is the only message sent on the stream.
type ChangeEvent struct {
	Collection string `json:"collection"`
}

type conn struct {
	uid string
	ws  *websocket.Conn
	mu  sync.Mutex
}

func (c *conn) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(messageType, data)
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*conn]struct{}
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*conn]struct{}),
		log:     log.With("component", "stream_hub"),
	}
}

func (h *Hub) register(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.uid] == nil {
		h.clients[c.uid] = make(map[*conn]struct{})
	}
	h.clients[c.uid][c] = struct{}{}
}

func (h *Hub) unregister(c *conn) {
	h.mu.Lock()
	if set := h.clients[c.uid]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.uid)
		}
	}
	h.mu.Unlock()

	_ = c.ws.Close()
}

// Changed announces a write to collection to every connection of uid.
func (h *Hub) Changed(uid, collection string) {
	msg, err := json.Marshal(ChangeEvent{Collection: collection})
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*conn, 0, len(h.clients[uid]))
	for c := range h.clients[uid] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.log.Debug("drop stream client", "uid", uid, "error", err)
			h.unregister(c)
		}
	}
}

// Connections reports how many streams uid has open.
func (h *Hub) Connections(uid string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[uid])
}
