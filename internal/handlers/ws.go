package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/live"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	wsWriteWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	wsPongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than wsPongWait)
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the router; the upgrade allows
		// same-origin and configured web clients alike.
		return true
	},
}

// WSHandler serves the live update stream over WebSocket, for clients
// that prefer it to SSE. The payloads are the same StreamEvents.
type WSHandler struct {
	broadcaster *live.Broadcaster
}

// NewWSHandler creates a WebSocket stream handler
func NewWSHandler(broadcaster *live.Broadcaster) *WSHandler {
	return &WSHandler{broadcaster: broadcaster}
}

// HandleWS upgrades the connection and relays broadcast events
// GET /api/live/nba/ws
func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.broadcaster.Subscribe()

	// Reader exists only to surface the close; inbound frames are ignored
	go func() {
		defer h.broadcaster.Unsubscribe(sub)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go h.writePump(conn, sub)
}

// writePump relays events and pings until the subscriber channel
// closes or a write fails.
func (h *WSHandler) writePump(conn *websocket.Conn, sub *live.Subscriber) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		h.broadcaster.Unsubscribe(sub)
	}()

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(models.StreamEvent{
		Type:      models.EventConnected,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		return
	}

	for {
		select {
		case ev, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
