package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/crm"
	"booking-gateway-server/models"
	"booking-gateway-server/services"
	"booking-gateway-server/store"
	ws "booking-gateway-server/websocket"
)

// BookingHandler serves the customer-facing booking intake surface.
type BookingHandler struct {
	Bookings *store.BookingStore
	Events   services.Events
	Hub      *ws.Hub
}

// RegisterBookingRoutes registers all booking-related routes
func RegisterBookingRoutes(router *gin.RouterGroup, h *BookingHandler) {
	router.POST("", h.CreateBooking)
	router.GET("/:id", h.GetBooking)
	router.POST("/:id/cancel", h.CancelBooking)
}

// CreateBooking validates the request and persists a new pending booking.
// The new job is announced to connected contractors and the CRM sink; both
// are fire-and-forget.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := models.Booking{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Service:       req.Service,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Address:       req.Address,
		Notes:         req.Notes,
	}

	if err := h.Bookings.Create(c.Request.Context(), &booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	h.Events.Publish(crm.EventBookingCreated, &booking)
	if h.Hub != nil {
		h.Hub.BroadcastNewJob(booking)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created",
		"booking": booking,
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := h.Bookings.GetByID(c.Request.Context(), uint(bookingID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// CancelBooking cancels a booking from any state. Calling it twice is an
// idempotent success, not an error.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	cancelled, err := h.Bookings.Cancel(c.Request.Context(), uint(bookingID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	// A repeated cancel is a no-op and must not re-emit the event.
	if cancelled {
		if booking, err := h.Bookings.GetByID(c.Request.Context(), uint(bookingID)); err == nil {
			h.Events.Publish(crm.EventBookingCancelled, booking)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
