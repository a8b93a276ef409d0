package realtime

import (
	"log"
	"net/http"
	"strings"

	"sic/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// WSHandler upgrades HTTP connections after validating the JWT. Browsers
// cannot set headers on WebSocket requests, so the token is usually passed
// as a query parameter; a Bearer header works for non-browser clients.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleWebSocket serves GET /ws?token=JWT_TOKEN.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required. Use ?token=YOUR_JWT_TOKEN"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	log.Printf("User %s connected via WebSocket", claims.UserID)
	h.hub.ServeWS(conn, claims.UserID)
	log.Printf("User %s disconnected from WebSocket", claims.UserID)
}
