package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/models"
	"booking-gateway-server/store"
	"booking-gateway-server/utils"
)

// AuthMiddleware validates contractor JWT tokens and sets the contractor in
// the request context.
func AuthMiddleware(contractors *store.ContractorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		contractor, err := contractors.GetByID(c.Request.Context(), claims.ContractorID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Contractor not found",
				"message": "Contractor associated with token not found",
			})
			c.Abort()
			return
		}

		c.Set("contractor", contractor)
		c.Set("contractor_id", contractor.ID)
		c.Next()
	}
}

// RequireActiveContractor rejects contractors that have not been activated
// yet. Must run after AuthMiddleware.
func RequireActiveContractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("contractor")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		contractor := value.(*models.Contractor)
		if !contractor.IsActive() {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Contractor not active",
				"message": "Account is pending activation",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
