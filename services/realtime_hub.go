package services

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WSClient struct {
	ID       uuid.UUID
	CoupleID uint
	UserID   uint
	Conn     *websocket.Conn

	// gorilla/websocket allows one writer at a time; broadcasts and the
	// keepalive ping run on different goroutines.
	writeMu sync.Mutex
}

func NewWSClient(coupleID, userID uint, conn *websocket.Conn) *WSClient {
	return &WSClient{ID: uuid.New(), CoupleID: coupleID, UserID: userID, Conn: conn}
}

// WriteMessage is the only path that may write to the connection.
func (c *WSClient) WriteMessage(messageType int, data []byte) error {
	if c.Conn == nil {
		return websocket.ErrCloseSent
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// RealtimeHub fans events out to every open connection of a couple, so a
// partner message shows up on the other phone without a reload.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.CoupleID] == nil {
		h.clients[c.CoupleID] = make(map[*WSClient]struct{})
	}
	h.clients[c.CoupleID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.CoupleID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.CoupleID)
		}
	}
	h.mu.Unlock()
	if c.Conn != nil {
		_ = c.Conn.Close()
	}
}

// BroadcastToCouple sends payload to every client of the couple except
// the one identified by exceptUserID (0 = everyone).
func (h *RealtimeHub) BroadcastToCouple(coupleID uint, exceptUserID uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[coupleID] {
		if exceptUserID != 0 && c.UserID == exceptUserID {
			continue
		}
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}
