package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/littlemangalore/venue-booking/internal/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is handled at the HTTP layer; the admin UI origin varies.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteWait = 10 * time.Second
	wsPingEvery = 50 * time.Second
)

// handleEvents streams booking and calendar change events to the admin UI
// so it does not have to poll the booking set.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := events.NewClient()
	s.hub.Register(client)

	go s.writePump(conn, client)
	go s.readPump(conn, client)
}

func (s *Server) writePump(conn *websocket.Conn, client *events.Client) {
	ticker := time.NewTicker(wsPingEvery)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; its job is to notice the peer going
// away and unregister the client.
func (s *Server) readPump(conn *websocket.Conn, client *events.Client) {
	defer func() {
		s.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
