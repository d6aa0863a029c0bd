package main

import (
	"context"
	"log"
	"time"

	"github.com/fleece-labs/fleece-api/config"
	"github.com/fleece-labs/fleece-api/handlers"
	"github.com/fleece-labs/fleece-api/middleware"
	"github.com/fleece-labs/fleece-api/routes"
	"github.com/fleece-labs/fleece-api/services"
	"github.com/fleece-labs/fleece-api/storage"
	"github.com/fleece-labs/fleece-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const appVersion = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	imageService, err := services.NewImageService(services.ImageConfig{
		CacheSize:    cfg.ImageCacheSize,
		CacheTTL:     cfg.ImageCacheTTL,
		FetchTimeout: cfg.FetchTimeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize image service:", err)
	}

	cardStore := storage.NewCardStore(cfg.UserCardsFile)
	catalog := services.NewCatalogService()
	chatService := services.NewChatService(cfg.ChatSessionSecret, cfg.ChatModel)

	// Warm the image cache with the first catalog cards so the landing
	// page renders without a fetch stall.
	go warmCatalogImages(imageService, catalog)

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	allowedOrigins := []string{cfg.FrontendURL}

	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Printf("   - %s", origin)
	}

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Image-Source", "X-Placeholder-Reason"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		utils.SafeLog("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter(100, time.Minute))

	v1 := router.Group("/api/v1")
	{
		routes.SetupCardRoutes(v1, catalog)
		routes.SetupImageRoutes(v1, imageService)
		routes.SetupMyCardRoutes(v1, cardStore, wsHandler)
		routes.SetupChatRoutes(v1, chatService)
	}

	router.GET("/ws/portfolio", wsHandler.HandlePortfolioWS)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": appVersion,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	utils.LogStartup("Fleece API", appVersion, cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func warmCatalogImages(images *services.ImageService, catalog *services.CatalogService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results := images.PreloadImages(ctx, catalog.ImageURLs(), 5)
	placeholders := 0
	for _, img := range results {
		if img.Source == services.SourcePlaceholder {
			placeholders++
		}
	}
	log.Printf("🧹 Warmed %d catalog images (%d placeholders)", len(results), placeholders)
}
