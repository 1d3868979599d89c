package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/config"
)

// AdminAuthMiddleware guards the admin surface (key minting, contractor
// activation) with a static bearer token from configuration. With no token
// configured the surface is disabled entirely.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.Admin.Token
		if expected == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Admin access disabled",
				"message": "No admin token is configured",
			})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid admin token",
				"message": "Please provide a valid admin token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
