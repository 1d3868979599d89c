package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/models"
	"booking-gateway-server/services"
	"booking-gateway-server/store"
)

// JobHandler serves the contractor-facing job surface: browsing unclaimed
// bookings and claiming them. All routes require an active contractor.
type JobHandler struct {
	Bookings *store.BookingStore
	Jobs     *store.JobStore
	Arbiter  *services.ClaimService
}

// RegisterJobRoutes registers all job-related routes
func RegisterJobRoutes(router *gin.RouterGroup, h *JobHandler) {
	router.GET("", h.ListPendingJobs)
	router.GET("/mine", h.MyJobs)
	router.POST("/:id/claim", h.ClaimJob)
}

// ListPendingJobs returns a point-in-time snapshot of unclaimed bookings,
// newest first.
func (h *JobHandler) ListPendingJobs(c *gin.Context) {
	bookings, err := h.Bookings.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  bookings,
		"count": len(bookings),
	})
}

// ClaimJob submits a claim for a pending booking. Racing claims on the same
// booking are arbitrated so exactly one contractor wins; losers get a 409
// and can retry against a fresh job list.
func (h *JobHandler) ClaimJob(c *gin.Context) {
	contractorID := c.GetUint("contractor_id")

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req models.JobClaimCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.Arbiter.Claim(c.Request.Context(), uint(bookingID), contractorID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, store.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Booking is no longer available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim job"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job claimed",
		"job":     job,
	})
}

// MyJobs lists the calling contractor's accepted job records, newest first.
func (h *JobHandler) MyJobs(c *gin.Context) {
	contractorID := c.GetUint("contractor_id")

	jobs, err := h.Jobs.ListByContractor(c.Request.Context(), contractorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"count": len(jobs),
	})
}
