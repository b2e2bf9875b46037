// internal/realtime/client.go
package realtime

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Client is one WebSocket connection held by an admin session. The
// direction of traffic is almost entirely server to client; the only
// inbound frames are pings from the browser keepalive.
type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan []byte
	operatorEmail string
	logger        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewClient(hub *Hub, conn *websocket.Conn, operatorEmail string, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 64),
		operatorEmail: operatorEmail,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// OperatorEmail returns the authenticated operator behind the session.
func (c *Client) OperatorEmail() string {
	return c.operatorEmail
}

// ReadPump drains inbound frames and detects disconnects.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// WritePump pushes events and keepalive pings to the browser.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues a payload for the session without blocking. It reports
// false when the buffer is full or the session is already closed; the
// hub owns the decision to drop a client that cannot keep up.
func (c *Client) Send(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	case <-c.ctx.Done():
		return false
	default:
		return false
	}
}

// Close tears the session down.
func (c *Client) Close() {
	c.cancel()
}
