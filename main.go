package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"booking-gateway-server/config"
	"booking-gateway-server/crm"
	"booking-gateway-server/database"
	"booking-gateway-server/jobs"
	"booking-gateway-server/middleware"
	"booking-gateway-server/routes"
	"booking-gateway-server/services"
	"booking-gateway-server/store"
	ws "booking-gateway-server/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.Load()
	gin.SetMode(config.AppConfig.Server.GinMode)

	if err := database.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	bookings := store.NewBookingStore(db)
	jobStore := store.NewJobStore(db)
	contractors := store.NewContractorStore(db)

	keys := store.NewApiKeyRegistry(db, 0)
	keys.Start()
	defer keys.Stop()

	notifier := crm.NewNotifier(
		config.AppConfig.CRM.WebhookURL,
		config.AppConfig.CRM.QueueSize,
		config.AppConfig.CRM.MaxRetries,
	)
	notifier.Start()
	defer notifier.Close()

	hub := ws.NewHub()
	go hub.Run()
	go middleware.CleanupRateLimiters()

	arbiter := services.NewClaimService(bookings, jobStore, notifier)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			arbiter.Cleanup(time.Hour)
		}
	}()

	meter := services.NewUsageMeter()

	expiration := jobs.NewExpirationJob(bookings, notifier,
		time.Duration(config.AppConfig.Booking.PendingTTLHours)*time.Hour)
	expiration.Start()
	defer expiration.Stop()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware(meter))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	jobFeed := ws.NewJobFeedHandler(hub, contractors)
	router.GET("/api/v1/ws/jobs", jobFeed.HandleJobFeed)

	routes.Register(router, &routes.Dependencies{
		Bookings:    bookings,
		Jobs:        jobStore,
		Contractors: contractors,
		Keys:        keys,
		Arbiter:     arbiter,
		Meter:       meter,
		Events:      notifier,
		Hub:         hub,
	})

	port := config.AppConfig.Server.Port
	log.Printf("Booking gateway listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
