package main

import (
	"log"
	"os"
	"time"

	"github.com/farmate/farmate-backend/internal/database"
	"github.com/farmate/farmate-backend/internal/handlers"
	"github.com/farmate/farmate-backend/internal/middleware"
	"github.com/farmate/farmate-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis-backed OTP store with a per-entry TTL; falls back to a
	// process-local store when Redis is not configured.
	otpStore := services.NewOTPStore()

	// Initialize storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "x-auth-token"}
	r.Use(cors.New(config))

	// Locally stored listing images
	if dir := services.UploadDir(); dir != "" {
		r.Static("/uploads", dir)
	}

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/send-otp", handlers.SendOTP(otpStore))
			auth.POST("/verify-otp", handlers.VerifyOTP(db, otpStore))
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", handlers.ListVehicles(db))
			vehicles.GET("/types", handlers.GetVehicleTypes())
			vehicles.GET("/:id", handlers.GetVehicle(db))
		}

		// WebSocket connection for booking events
		api.GET("/ws", middleware.AuthMiddleware(db), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(db))
		{
			protected.POST("/vehicles/:id/images", handlers.UploadVehicleImage(db))

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("/farmer", handlers.GetFarmerBookings(db))
				bookings.GET("/driver", handlers.GetDriverBookings(db))
				bookings.GET("/estimate", handlers.EstimateBookingPrice(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PUT("/:id/status", handlers.UpdateBookingStatus(db, hub))
			}

			farmers := protected.Group("/farmers")
			{
				farmers.GET("/:id", handlers.GetFarmer(db))
				farmers.PUT("/:id", handlers.UpdateFarmer(db))
			}

			drivers := protected.Group("/drivers")
			{
				drivers.GET("/:id", handlers.GetDriver(db))
				drivers.PUT("/:id", handlers.UpdateDriver(db))
				drivers.POST("/:id/vehicles", handlers.AddVehicle(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
