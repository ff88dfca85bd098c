// internal/httpserver/ws.go
//
// WebSocket stream of live session state. The client opens one socket per
// session and receives a full snapshot once per second while connected,
// enough to render the ticking timer without polling. Snapshots are
// consistent copies; the socket never observes a half-updated deck.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced on the HTTP routes; snapshots are not sensitive
	},
}

// handleSessionWS upgrades the connection and pushes state snapshots until
// the client goes away or the session disappears.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Snapshot(r.Context(), id); err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	// Reader goroutine: we send only, but reading is required to notice
	// close frames promptly.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		snap, err := s.store.Snapshot(r.Context(), id)
		if err != nil {
			return
		}
		if err := conn.WriteJSON(snapshotRes{
			Session:       snap,
			SolvedCount:   snap.SolvedCount(),
			RevealedCount: snap.RevealedCount(),
			Total:         len(snap.Deck),
		}); err != nil {
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
