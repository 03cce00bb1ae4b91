package main

import (
	"context"                            // context package is needed for Redis operations
	"log"                                // log package is needed for logging
	"rental_gateway/internal/api"        // Custom package for API handlers
	"rental_gateway/internal/booking"    // Custom package for the booking coordinator
	"rental_gateway/internal/config"     // Custom package for configuration
	"rental_gateway/internal/middleware" // Custom package for middleware
	"rental_gateway/internal/rental"     // Custom package for the backend client
	"rental_gateway/internal/session"    // Custom package for the session store
	"rental_gateway/internal/utils"      // Custom package for Redis cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the gateway
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup the client for the external rental/coin REST API
	client := rental.NewClient(cfg.APIBaseURL, cfg.ListRetryDelay)

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err := redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Session store and caches over the shared Redis client
	store := session.NewRedisStore(redisClient)           // Persisted session records
	adminCache := utils.NewCache(redisClient, "admin")    // Dashboard metrics cache
	coordinator := booking.NewCoordinator(client, client) // Debit/book/refund coordinator

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Credential routes
	r.POST("/login", api.LoginHandler(client, store, cfg.AppName, cfg.JWTSecret)) // Login endpoint
	r.POST("/register", api.RegisterHandler(client))                              // Registration endpoint
	r.POST("/forgotpassword", api.ForgotPasswordHandler(client))                  // Password reset endpoint
	r.GET("/session", api.SessionHandler(store, cfg.JWTSecret))                   // Session hydration endpoint

	// Public vehicle routes
	r.GET("/vehicles", api.ListVehiclesHandler(client))        // Filtered search endpoint
	r.GET("/vehicles/:id", api.GetVehicleHandler(client))      // Vehicle detail endpoint
	r.GET("/vehicle-types", api.VehicleTypesHandler(client))   // Type lookup endpoint
	r.GET("/vehicle-brands", api.VehicleBrandsHandler(client)) // Brand lookup endpoint
	r.GET("/vehicle-models", api.VehicleModelsHandler(client)) // Model lookup endpoint

	// Authenticated routes (protected by the session middleware)
	authGroup := r.Group("")
	authGroup.Use(middleware.SessionMiddleware(cfg.JWTSecret, store))
	authGroup.POST("/logout", api.LogoutHandler(store))                               // Logout endpoint
	authGroup.POST("/bookings", api.CreateBookingHandler(coordinator, client, store)) // Booking transaction endpoint
	authGroup.GET("/bookings/mine", api.MyBookingsHandler(client))                    // Booking history endpoint
	authGroup.GET("/coins/balance", api.BalanceHandler(client, store))                // Balance endpoint
	authGroup.POST("/coins/topup", api.TopUpHandler(client, store))                   // Top-up endpoint
	authGroup.GET("/profile", api.GetProfileHandler(client))                          // Profile endpoint
	authGroup.PATCH("/profile", api.UpdateProfileHandler(client, store))              // Profile update endpoint
	authGroup.DELETE("/profile", api.DeleteProfileHandler(client, store))             // Account delete endpoint

	// Admin routes (protected, allowlisted usernames only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.SessionMiddleware(cfg.JWTSecret, store), middleware.AdminOnlyMiddleware(cfg.AdminUsers))
	adminGroup.POST("/vehicles", api.CreateVehicleHandler(client))     // Add vehicle endpoint
	adminGroup.DELETE("/vehicles", api.DeleteVehiclesHandler(client))  // Batch delete endpoint
	adminGroup.GET("/metrics", api.MetricsHandler(client, adminCache)) // Dashboard metrics endpoint

	log.Println("Gateway running on " + cfg.AppPort) // Log gateway start
	r.Run(":" + cfg.AppPort)                         // Start the gateway on port cfg.AppPort
}
