package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)

	// The registration races the broadcast without a short settle.
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast(map[string]string{"type": "metric_done", "metric": "heart_rate"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]string
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "metric_done", msg["type"])
	assert.Equal(t, "heart_rate", msg["metric"])
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	// Must not panic or block.
	hub.Broadcast(map[string]string{"type": "run_done"})
}

func TestHub_BroadcastUnencodableMessage(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	hub.Broadcast(make(chan int)) // json.Marshal fails; logged and dropped
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	time.Sleep(50 * time.Millisecond)
	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
