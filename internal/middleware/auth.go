package middleware

import (
	"strings"

	"github.com/farmate/farmate-backend/internal/models"
	"github.com/farmate/farmate-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthMiddleware validates the session token and resolves the farmer or
// driver record it points at.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Token comes from x-auth-token, the Authorization header, or a
		// query parameter (for WebSocket clients).
		tokenString := c.GetHeader("x-auth-token")

		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"success": false, "message": "No token, authorization denied"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"success": false, "message": "Token is not valid"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"success": false, "message": "Token is not valid"})
			c.Abort()
			return
		}

		id, idOK := claims["id"].(float64)
		userType, typeOK := claims["type"].(string)
		if !idOK || !typeOK {
			c.JSON(401, gin.H{"success": false, "message": "Token is not valid"})
			c.Abort()
			return
		}

		// The token must still resolve to an existing user.
		switch userType {
		case models.UserTypeFarmer:
			var farmer models.Farmer
			if err := db.First(&farmer, uint(id)).Error; err != nil {
				c.JSON(401, gin.H{"success": false, "message": "Token is not valid"})
				c.Abort()
				return
			}
		case models.UserTypeDriver:
			var driver models.Driver
			if err := db.First(&driver, uint(id)).Error; err != nil {
				c.JSON(401, gin.H{"success": false, "message": "Token is not valid"})
				c.Abort()
				return
			}
		default:
			c.JSON(401, gin.H{"success": false, "message": "Token is not valid"})
			c.Abort()
			return
		}

		c.Set("userId", uint(id))
		c.Set("userType", userType)
		c.Next()
	}
}
