package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/cache"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/chat"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/config"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/database"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/handler"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/limiter"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/middleware"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/stats"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache when configured
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
			// Continue without Redis cache (fail-open)
		}
	}

	// Cooldown limiter: Redis-backed when available so multiple instances
	// share the window, in-memory otherwise.
	var limiterStore limiter.Store
	if cfg.RedisURL != "" {
		redisStore, err := limiter.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect limiter to Redis: %v", err)
		} else {
			limiterStore = redisStore
			defer redisStore.Close()
		}
	}
	if limiterStore == nil {
		memStore := limiter.NewMemoryStore()
		defer memStore.Close()
		limiterStore = memStore
	}
	cooldown := limiter.New(limiterStore, cfg.ReportCooldown)

	// Initialize handlers
	reportHandler := handler.NewReportHandler(db, cooldown, redisCache)
	voteHandler := handler.NewVoteHandler(db)
	leaderboardHandler := handler.NewLeaderboardHandler(db, redisCache)
	chatHandler := handler.NewChatHandler(chat.NewResponder(db))
	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.AdminEmails)

	// Initialize and start background stats collector if enabled
	var collector *stats.Collector
	if cfg.StatsEnabled {
		collector = stats.NewCollector(db, cfg.StatsInterval)
		go collector.Start(context.Background())
		log.Println("Background stats collector started")
	}

	// Setup router
	r := gin.Default()

	// Prometheus metrics middleware
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stats collector status
	r.GET("/stats/status", func(c *gin.Context) {
		if collector != nil {
			c.JSON(200, collector.GetStatus())
		} else {
			c.JSON(200, gin.H{"enabled": false, "message": "Stats collector is disabled"})
		}
	})

	// API routes
	api := r.Group("/api")
	{
		// Reports
		api.POST("/reports", reportHandler.Create)
		api.GET("/reports", reportHandler.List)
		api.PATCH("/reports/:id/status",
			middleware.AdminMiddleware(cfg.JWTSecret, cfg.AdminEmails),
			reportHandler.UpdateStatus)

		// Votes
		api.POST("/reports/:id/upvote", voteHandler.Toggle)
		api.GET("/reports/:id/upvote", voteHandler.Count)

		// Leaderboard
		api.GET("/leaderboard", leaderboardHandler.Get)

		// Chat
		api.POST("/chat", chatHandler.Respond)

		// Admin login
		api.POST("/auth/admin", authHandler.AdminLogin)
	}

	log.Printf("API server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
