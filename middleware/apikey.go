package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/store"
)

// ApiKeyHeader carries the optional caller key.
const ApiKeyHeader = "X-API-Key"

// ApiKeyMiddleware implements the metering access policy: an absent key means
// anonymous access and the request proceeds without a key context; a
// presented key must validate or the request is rejected before any state
// mutation. Usage recording happens after validation and never blocks the
// response path.
func ApiKeyMiddleware(registry *store.ApiKeyRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader(ApiKeyHeader)
		if rawKey == "" {
			c.Next()
			return
		}

		key, err := registry.Validate(c.Request.Context(), rawKey)
		if err != nil {
			if errors.Is(err, store.ErrInvalidKey) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid API key",
					"message": "The provided API key is unknown or inactive",
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to validate API key",
				})
			}
			c.Abort()
			return
		}

		c.Set("api_key", key)
		c.Set("api_key_id", key.ID)
		registry.RecordUsage(key.ID)
		c.Next()
	}
}
