package stream

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/middleware/auth"
)

const pingPeriod = 25 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
	log *slog.Logger
}

func NewHandler(hub *Hub, log *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		log: log.With("component", "stream_handler"),
	}
}

// ServeHTTP expects the auth middleware to have placed the session in the context.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, err := auth.UID(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", "error", err)
		return
	}

	c := &conn{uid: uid, ws: ws}
	h.hub.register(c)
	h.log.Debug("stream opened", "uid", uid)

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(pingPeriod)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if err := c.write(websocket.PingMessage, nil); err != nil {
					h.hub.unregister(c)
					return
				}
			case <-done:
				return
			}
		}
	}()

	// read loop ends on client close
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			close(done)
			h.hub.unregister(c)
			h.log.Debug("stream closed", "uid", uid)
			return
		}
	}
}
