package cmd

import (
	"fmt"
	"log"
	"os"

	"ytconv/config"
	"ytconv/handlers"
	"ytconv/middleware"
	"ytconv/services"
	"ytconv/websocket"
	"ytconv/ytdlp"

	"github.com/gin-gonic/gin"
)

// StartWebServer starts the web server
func StartWebServer(cfg config.Config) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		log.Fatalf("Failed to create download directory %s: %v", cfg.DownloadDir, err)
	}

	// Initialize services
	hub := websocket.NewHub()
	go hub.Run()

	store := services.NewJobStore(hub)
	engine := ytdlp.New(cfg.YtdlpPath)
	converter := services.NewConverter(store, engine, cfg.DownloadDir)
	fileService := services.NewFileService()

	sweeper := services.NewRetentionSweeper(cfg.DownloadDir, cfg.FileRetention, cfg.CleanupEvery)
	sweeper.Start()

	// Initialize handlers
	convertHandler := handlers.NewConvertHandler(store, converter, engine, fileService, hub)
	fileHandler := handlers.NewFileHandler(fileService, cfg.DownloadDir)
	healthHandler := handlers.NewHealthHandler(cfg.DownloadDir)

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply middleware
	r.Use(middleware.Logging())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Setup routes
	setupRoutes(r, convertHandler, fileHandler, healthHandler)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("ytconv web server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, convertHandler *handlers.ConvertHandler, fileHandler *handlers.FileHandler, healthHandler *handlers.HealthHandler) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// API routes group
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)

		// Conversion endpoints
		apiGroup.GET("/info", convertHandler.Info)
		apiGroup.POST("/convert", convertHandler.Convert)
		apiGroup.GET("/status/:jobId", convertHandler.Status)
		apiGroup.GET("/download/:jobId", convertHandler.Download)

		// WebSocket endpoints for real-time progress
		wsGroup := apiGroup.Group("/ws")
		{
			// WebSocket endpoint for specific job progress
			wsGroup.GET("/jobs/:jobId", convertHandler.HandleWebSocketConnection)

			// WebSocket endpoint for all job progress
			wsGroup.GET("/jobs", convertHandler.HandleWebSocketAllConnection)
		}

		// Converted file discovery
		apiGroup.GET("/files", fileHandler.ListFiles)
	}
}
