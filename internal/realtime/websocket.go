package realtime

import (
	"log/slog"
	"time"

	"github.com/gofiber/websocket/v2"
)

const pingPeriod = 30 * time.Second

// WebSocketConn wraps websocket.Conn so the hub does not depend on the transport.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

// WritePump copies queued payloads to the connection and pings it
// periodically. It returns when send is closed or a write fails.
func (w *WebSocketConn) WritePump(send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				_ = w.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := w.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Debug("websocket write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := w.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
