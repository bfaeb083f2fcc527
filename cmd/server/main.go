package main

import (
	"context"
	"log"

	"luka_backend/internal/api"        // Custom package for API handlers
	"luka_backend/internal/config"     // Custom package for configuration
	"luka_backend/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))
	r.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret, cfg.IsProd))
	r.POST("/auth/logout", api.LogoutHandler(cfg.IsProd))

	// Page routes, behind the route guard: the dashboard needs a session,
	// onboarding and login are for visitors, the completion path is exempt so
	// a freshly signed-in user can reach the completion transaction
	pages := r.Group("/", middleware.RouteGuardMiddleware(cfg.JWTSecret))
	pages.GET("/onboarding", api.OnboardingPageHandler())
	pages.GET("/onboarding/complete", api.CompleteOnboardingHandler(db, redisClient, cfg.JWTSecret, cfg.IsProd))
	pages.GET("/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Sign in to continue"})
	})
	pages.GET("/dashboard", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.DashboardHandler(db))

	// Onboarding wizard API (anonymous: runs before sign-in)
	wizard := r.Group("/api/onboarding")
	wizard.GET("/strategies", api.StrategiesHandler())
	wizard.POST("/wizard", api.WizardStepHandler())
	wizard.POST("/draft", api.SaveDraftHandler(cfg.IsProd))
	wizard.GET("/draft", api.GetDraftHandler())
	wizard.DELETE("/draft", api.ClearDraftHandler(cfg.IsProd))
	wizard.GET("/status", middleware.JWTAuthMiddleware(cfg.JWTSecret), api.OnboardingStatusHandler(db))

	// Source routes (protected by JWT)
	sourceGroup := r.Group("/api/sources")
	// Protect source routes with JWT middleware and inject Redis client into context
	sourceGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})
	sourceGroup.GET("", api.ListSourcesHandler(db))
	sourceGroup.GET("/total-balance", api.TotalBalanceHandler(db, redisClient))
	sourceGroup.GET("/by-type/:type", api.GetSourcesByTypeHandler(db))
	sourceGroup.GET("/:id", api.GetSourceHandler(db, redisClient))
	sourceGroup.POST("", api.CreateSourceHandler(db))
	sourceGroup.PATCH("/:id", api.UpdateSourceHandler(db))
	sourceGroup.DELETE("/:id", api.DeleteSourceHandler(db))
	sourceGroup.DELETE("/:id/permanent", api.HardDeleteSourceHandler(db))
	sourceGroup.POST("/:id/restore", api.RestoreSourceHandler(db))

	// Profile routes (protected by JWT)
	profileGroup := r.Group("/api/profile")
	profileGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	profileGroup.GET("", api.GetProfileHandler(db))
	profileGroup.PATCH("", api.UpdateProfileHandler(db))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
