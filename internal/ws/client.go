package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	// rooms is guarded by Hub.mu
	rooms map[string]struct{}
}

// writePump is the only writer on conn
func (c *client) writePump(logger primary.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("Websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
