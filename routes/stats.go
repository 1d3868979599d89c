package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/services"
)

// StatsHandler exposes the usage meter snapshot.
type StatsHandler struct {
	Meter *services.UsageMeter
}

// RegisterStatsRoutes registers the stats route
func RegisterStatsRoutes(router *gin.RouterGroup, h *StatsHandler) {
	router.GET("/stats", h.GetStats)
}

// GetStats always succeeds once the meter is initialized.
func (h *StatsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Meter.Snapshot())
}
