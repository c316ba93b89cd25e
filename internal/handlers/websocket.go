package handlers

import (
	"github.com/farmate/farmate-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler attaches the authenticated user to the notification hub.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userType := c.GetString("userType")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userType)
	}
}
