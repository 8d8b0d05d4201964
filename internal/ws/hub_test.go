package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	conn := dialHub(t, h)

	// Registration goes through the hub's event loop; give it a moment
	// before broadcasting.
	time.Sleep(100 * time.Millisecond)

	h.BroadcastJSON(map[string]string{"type": "heartbeat"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev map[string]string
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "heartbeat", ev["type"])
}

func TestHubBroadcastUnmarshalableIsDropped(t *testing.T) {
	h := NewHub()

	// Channels cannot be marshaled; the broadcast is silently discarded
	// rather than panicking or blocking.
	h.BroadcastJSON(make(chan int))
	assert.Empty(t, h.broadcast)
}

func TestHubShutdownClosesClients(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	conn := dialHub(t, h)
	time.Sleep(100 * time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "server side closed the connection")
}
