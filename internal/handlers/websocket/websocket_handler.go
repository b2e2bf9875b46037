// internal/handlers/websocket/websocket_handler.go
package websocket

import (
	"net/http"

	"decora-admin/internal/middleware"
	"decora-admin/internal/pkg/response"
	"decora-admin/internal/pkg/session"
	"decora-admin/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is not a security boundary here; the route already sits
	// behind token auth and the SPA may be served from anywhere.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub      *realtime.Hub
	sessions *session.Manager
	logger   *zap.Logger
}

func NewWebSocketHandler(hub *realtime.Hub, sessions *session.Manager, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		sessions: sessions,
		logger:   logger,
	}
}

// Connect upgrades an authenticated admin session to WebSocket and
// attaches it to the hub.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	operator, ok := middleware.OperatorEmail(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(h.hub, conn, operator, h.logger)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// Stats reports connected sockets and active sessions for the admin
// header widget.
func (h *WebSocketHandler) Stats(c *gin.Context) {
	activeSessions, err := h.sessions.ActiveCount(c.Request.Context())
	if err != nil {
		h.logger.Warn("failed to count sessions", zap.Error(err))
		activeSessions = -1
	}

	response.Success(c, http.StatusOK, "connection stats retrieved", gin.H{
		"connected_sockets": h.hub.TotalClients(),
		"active_sessions":   activeSessions,
	})
}
