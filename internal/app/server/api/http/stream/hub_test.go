package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"weightloss/internal/app/server/api/http/middleware/auth"
	"weightloss/internal/domain/user"
)

// serve opens the stream for whichever uid the X-Test-UID header names.
func serve(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	h := NewHandler(hub, slog.Default())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := r.Header.Get("X-Test-UID"); uid != "" {
			r = r.WithContext(auth.WithSession(r.Context(), user.Session{UID: uid}))
		}
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, uid string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("X-Test-UID", uid)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func waitConnections(t *testing.T, hub *Hub, uid string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Connections(uid) == n }, time.Second, 5*time.Millisecond)
}

func TestHub_ChangedReachesOnlyOwner(t *testing.T) {
	hub := NewHub(slog.Default())
	srv := serve(t, hub)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	waitConnections(t, hub, "alice", 1)
	waitConnections(t, hub, "bob", 1)

	hub.Changed("alice", "logs")

	var ev ChangeEvent
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, alice.ReadJSON(&ev))
	assert.Equal(t, "logs", ev.Collection)

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := bob.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub := NewHub(slog.Default())
	srv := serve(t, hub)

	ws := dial(t, srv, "alice")
	waitConnections(t, hub, "alice", 1)

	require.NoError(t, ws.Close())
	waitConnections(t, hub, "alice", 0)

	hub.Changed("alice", "logs")
}

func TestHandler_RequiresSession(t *testing.T) {
	srv := serve(t, NewHub(slog.Default()))

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
