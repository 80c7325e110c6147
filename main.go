package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"image-prompt-service/config"
	"image-prompt-service/gemini"
	"image-prompt-service/handlers"
	"image-prompt-service/keystore"
	"image-prompt-service/llm"
	"image-prompt-service/middleware"
	"image-prompt-service/openai"
	"image-prompt-service/session"
	"image-prompt-service/stubllm"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Info("Starting the image prompt service...")

	// Select the LLM provider
	instruction := llm.AnalysisInstruction(cfg.DescriptionLanguage(), cfg.PromptLanguage())
	var client llm.Client
	switch cfg.LLMProvider {
	case "openai":
		client = openai.NewClient(cfg.OpenAIModel, instruction)
	case "stub":
		client = stubllm.NewClient()
	default:
		client = gemini.NewClient(cfg.GeminiModel, instruction)
	}
	log.Infof("Analyzer LLM provider=%s description=%s prompt=%s",
		client.SourceName(), cfg.DescriptionLanguage(), cfg.PromptLanguage())

	// Initialize credential store and session state
	store := keystore.NewFileStore(cfg.KeystorePath)
	sess := session.New(store, client, cfg.ServerAPIKey())

	// Initialize handlers
	h := handlers.NewHandlers(cfg, sess)

	// Setup router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Page and health endpoints
	router.GET("/", h.ServePage)
	router.GET("/health", h.HealthCheck)

	// Rate-limited API endpoints
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, time.Minute))
	{
		api.GET("/state", h.GetState)
		api.GET("/key", h.GetKey)
		api.PUT("/key", h.PutKey)
		api.POST("/image", h.PutImage)
		api.POST("/analyze", h.Analyze)
		api.POST("/translate", h.Translate)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Infof("Image prompt service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
