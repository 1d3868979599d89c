package routes

import (
	"github.com/gin-gonic/gin"

	"booking-gateway-server/middleware"
	"booking-gateway-server/services"
	"booking-gateway-server/store"
	ws "booking-gateway-server/websocket"
)

// Dependencies carries the shared components the route handlers need.
type Dependencies struct {
	Bookings    *store.BookingStore
	Jobs        *store.JobStore
	Contractors *store.ContractorStore
	Keys        *store.ApiKeyRegistry
	Arbiter     *services.ClaimService
	Meter       *services.UsageMeter
	Events      services.Events
	Hub         *ws.Hub
}

// Register wires all API routes under /api/v1
func Register(router *gin.Engine, deps *Dependencies) {
	api := router.Group("/api/v1")
	api.Use(middleware.ApiKeyMiddleware(deps.Keys))

	// Contractor auth
	auth := api.Group("/auth")
	{
		authHandler := &AuthHandler{Contractors: deps.Contractors}
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(deps.Contractors), authHandler.Me)
	}

	// Customer booking intake
	bookings := api.Group("/bookings")
	{
		bookingHandler := &BookingHandler{
			Bookings: deps.Bookings,
			Events:   deps.Events,
			Hub:      deps.Hub,
		}
		RegisterBookingRoutes(bookings, bookingHandler)
	}

	// Contractor job board, active contractors only
	jobs := api.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(deps.Contractors), middleware.RequireActiveContractor())
	{
		jobHandler := &JobHandler{
			Bookings: deps.Bookings,
			Jobs:     deps.Jobs,
			Arbiter:  deps.Arbiter,
		}
		RegisterJobRoutes(jobs, jobHandler)
	}

	// Usage stats
	RegisterStatsRoutes(api, &StatsHandler{Meter: deps.Meter})

	// Admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		adminHandler := &AdminHandler{
			Keys:        deps.Keys,
			Contractors: deps.Contractors,
		}
		RegisterAdminRoutes(admin, adminHandler)
	}
}
