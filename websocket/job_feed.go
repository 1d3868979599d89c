package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/store"
	"booking-gateway-server/utils"
)

// JobFeedHandler exposes the contractor job feed over a WebSocket endpoint.
// Browsers cannot set an Authorization header on the upgrade request, so the
// JWT travels in the token query parameter.
type JobFeedHandler struct {
	Hub         *Hub
	Contractors *store.ContractorStore
}

func NewJobFeedHandler(hub *Hub, contractors *store.ContractorStore) *JobFeedHandler {
	return &JobFeedHandler{Hub: hub, Contractors: contractors}
}

// HandleJobFeed authenticates the contractor and hands the connection to the
// hub. Only active contractors may subscribe.
func (h *JobFeedHandler) HandleJobFeed(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Token required",
			"message": "Please provide a valid token in query parameters",
		})
		return
	}

	claims, err := utils.VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid token",
			"message": "Token is invalid or expired",
		})
		return
	}

	contractor, err := h.Contractors.GetByID(c.Request.Context(), claims.ContractorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Contractor not found",
			"message": "Contractor associated with token not found",
		})
		return
	}
	if !contractor.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Contractor not active",
			"message": "Account is pending activation",
		})
		return
	}

	ServeJobFeed(h.Hub, c.Writer, c.Request, contractor.ID)
}
