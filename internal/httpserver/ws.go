// internal/httpserver/ws.go
//
// WebSocket endpoint. A client connects with ?gameId= and joins that
// game's room; it then receives game_updated / game_over events until it
// disconnects. The read loop only drains control frames; all state
// changes arrive over the HTTP surface.

package httpserver

import (
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := os.Getenv("CLIENT_ORIGIN")
		if origin == "" {
			return true
		}
		return r.Header.Get("Origin") == origin
	},
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		http.Error(w, `{"error":"gameId required"}`, http.StatusBadRequest)
		return
	}
	if _, err := s.store.GetSession(r.Context(), gameID); err != nil {
		writeErr(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	s.hub.Join(gameID, conn)

	// Drain until the client goes away, then leave the room.
	go func() {
		defer s.hub.Leave(gameID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
