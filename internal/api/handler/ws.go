package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/githubzohaib/Forest-MGT/internal/chathub"
	"github.com/githubzohaib/Forest-MGT/internal/gateway"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection and registers it as a live
// connection for the authenticated user. Inbound frames flow through the
// same gateway as HTTP submits; outbound frames are stored messages. The
// most recent history page is replayed on connect so a reconnecting
// client catches up on what it missed while offline.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrAuthRequired.Error()})
		return
	}

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	conn := chathub.NewWebSocketConn(user.ID, wsConn, h.Registry,
		h.Gateway.HandleInbound(user.ID, user.Role))

	// Queue the replay before registering, so live pushes cannot land
	// ahead of older history on this connection. The page fits well
	// inside the connection's send buffer.
	history, err := h.Gateway.History(user.ID, user.Role, gateway.HistoryFilter{})
	if err != nil {
		log.Printf("Failed to load history for %s on connect: %v", user.ID, err)
	}
	for i := len(history) - 1; i >= 0; i-- { // stored newest first, replayed oldest first
		conn.Send() <- history[i]
	}

	h.Registry.Register(conn)
	conn.Run()
}
