// internal/handlers/websocket/websocket.go
package websocket

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"realty-service/internal/middleware"
	"realty-service/internal/pkg/response"
	ws "realty-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler accepts upgrades from the listed origins only. Requests
// without an Origin header (non-browser clients) are allowed.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		logger: logger,
	}
}

// HandleConnection authenticates before upgrading so a rejected client gets a plain HTTP error.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		response.Unauthorized(c, "missing authentication token")
		return
	}

	auth, err := h.hub.AuthenticateClient(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("websocket authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		if errors.Is(err, ws.ErrNotVerified) {
			response.Forbidden(c, "must verify")
			return
		}
		response.FromError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, auth)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetStats reports live connection counts, including the caller's own.
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	}
	if a, ok := middleware.GetAdmin(c); ok {
		stats["my_connections"] = h.hub.GetConnectedClients(a.ID)
	}
	response.Success(c, http.StatusOK, "WebSocket stats", stats)
}
