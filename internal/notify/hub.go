// internal/notify/hub.go
//
// Real-time fan-out over WebSocket. Connections join a room per game and
// receive every committed state change for it. Delivery is best-effort,
// at-most-once: a failed write drops the connection and never affects
// the move that was already persisted.

package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// writeWait bounds how long a single event write may block per client.
const writeWait = 5 * time.Second

// Event is the envelope pushed to clients in a game room.
type Event struct {
	Type    string `json:"type"`
	GameID  string `json:"gameId"`
	Payload any    `json:"payload"`
}

// Hub tracks one connection set per game room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]struct{}
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*websocket.Conn]struct{})}
}

// Join adds a connection to a game room.
func (h *Hub) Join(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[gameID]
	if !ok {
		room = make(map[*websocket.Conn]struct{})
		h.rooms[gameID] = room
	}
	room[conn] = struct{}{}
	log.Debug().Str("game", gameID).Int("clients", len(room)).Msg("client joined room")
}

// Leave removes a connection from a game room and closes it.
func (h *Hub) Leave(gameID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[gameID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, gameID)
		}
	}
	_ = conn.Close()
}

// Publish sends an event to every connection in the game's room. Dead
// connections are pruned; errors are logged and swallowed.
func (h *Hub) Publish(gameID string, eventType string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[gameID]
	if len(room) == 0 {
		return
	}
	ev := Event{Type: eventType, GameID: gameID, Payload: payload}
	for conn := range room {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			log.Warn().Err(err).Str("game", gameID).Msg("dropping websocket client")
			delete(room, conn)
			_ = conn.Close()
		}
	}
	if len(room) == 0 {
		delete(h.rooms, gameID)
	}
}
