package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"core/internal/config"
	"core/internal/handler"
	"core/internal/repository"
	"core/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Property Recommendation Engine")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize listing database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize local state store (search intent slots, feedback log)
	state, err := repository.OpenStateStore(cfg.State.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer state.Close()

	log.Printf("✅ State store ready at %s", cfg.State.SQLitePath)

	// Initialize services
	quality := service.NewQualityScorer(service.QualityWeights{
		Rating:       cfg.Scoring.WeightRating,
		Price:        cfg.Scoring.WeightPrice,
		Demand:       cfg.Scoring.WeightDemand,
		Availability: cfg.Scoring.WeightAvailability,
	})
	intents := service.NewSearchIntentStore(state)
	ranker := service.NewRanker(cfg.Recs.DefaultLimit)
	propertyService := service.NewPropertyService(repo, quality, cfg.Search.SnapshotLimit)
	recommendService := service.NewRecommendService(repo, intents, ranker, state, cfg.Search.SnapshotLimit)

	log.Println("✅ Services initialized")

	// Initialize handlers
	propertyHandler := handler.NewPropertyHandler(propertyService, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	recommendHandler := handler.NewRecommendHandler(recommendService, cfg.Recs.MaxLimit)
	feedbackHandler := handler.NewFeedbackHandler(recommendService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "property-recommendation-engine",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/properties", propertyHandler.List)
		apiV1.GET("/properties/:id", propertyHandler.Get)

		apiV1.POST("/recommendations", recommendHandler.Recommend)

		apiV1.POST("/search-intent", recommendHandler.SaveIntent)
		apiV1.GET("/search-intent", recommendHandler.GetIntent)

		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API base: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
