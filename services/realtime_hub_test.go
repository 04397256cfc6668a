package services

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHubClient(t *testing.T, hub *RealtimeHub, srvURL string, coupleID, userID uint) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srvURL, "http") +
		"?couple=" + strconv.FormatUint(uint64(coupleID), 10) +
		"&user=" + strconv.FormatUint(uint64(userID), 10)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRealtimeHubBroadcast(t *testing.T) {
	hub := NewRealtimeHub()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		coupleID, _ := strconv.ParseUint(r.URL.Query().Get("couple"), 10, 32)
		userID, _ := strconv.ParseUint(r.URL.Query().Get("user"), 10, 32)
		hub.Register(NewWSClient(uint(coupleID), uint(userID), conn))
	}))
	defer srv.Close()

	sender := dialHubClient(t, hub, srv.URL, 1, 10)
	partner := dialHubClient(t, hub, srv.URL, 1, 20)
	stranger := dialHubClient(t, hub, srv.URL, 2, 30)

	// Registration happens server-side after the handshake returns.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[1]) == 2 && len(hub.clients[2]) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToCouple(1, 10, map[string]string{"kind": "message.created"})

	require.NoError(t, partner.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := partner.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"message.created"}`, string(msg))

	// Neither the sender nor another couple's client hears anything.
	for _, conn := range []*websocket.Conn{sender, stranger} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
		_, _, err := conn.ReadMessage()
		assert.Error(t, err)
	}
}

func TestRealtimeHubConcurrentPingAndBroadcast(t *testing.T) {
	hub := NewRealtimeHub()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	clients := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		cl := NewWSClient(1, 10, conn)
		hub.Register(cl)
		clients <- cl
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	cl := <-clients

	// Drain so the server's write buffer never blocks.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Broadcasts and keepalive pings hit the same conn from different
	// goroutines; the client must serialize them.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.BroadcastToCouple(1, 0, map[string]string{"kind": "message.created"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = cl.WriteMessage(websocket.PingMessage, nil)
		}
	}()
	wg.Wait()
}

func TestRealtimeHubUnregister(t *testing.T) {
	hub := NewRealtimeHub()
	c := NewWSClient(1, 10, nil)

	hub.Register(c)
	assert.Len(t, hub.clients[1], 1)

	hub.Unregister(c)
	assert.Empty(t, hub.clients)

	// Broadcasting with no listeners is a no-op.
	hub.BroadcastToCouple(1, 0, map[string]string{"kind": "noop"})
}
