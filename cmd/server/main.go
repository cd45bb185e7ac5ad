package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lume-api/api/routes"
	"lume-api/internal/chat"
	"lume-api/internal/common"
	"lume-api/internal/config"
	"lume-api/internal/database"
	"lume-api/internal/events"
	"lume-api/internal/line"
	"lume-api/internal/llm"
	"lume-api/internal/sentiment"
	"lume-api/internal/user"
	"lume-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger
	logger := logger.New()
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.SugaredLogger.Desugar()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Run registry and profile migrations; per-user message partitions are
	// provisioned lazily on first contact
	if err := user.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	// Initialize the LINE client
	lineClient, err := line.NewClient(cfg.Line, zapLogger)
	if err != nil {
		logger.Fatal("Failed to initialize LINE client", "error", err)
	}

	// Initialize providers and services
	userRepository := user.NewGormRepository(db, zapLogger)

	llmProvider, err := llm.NewOpenAIProvider(cfg.LLM, zapLogger)
	if err != nil {
		logger.Fatal("Failed to initialize LLM provider", "error", err)
	}

	sentimentProvider := sentiment.NewHuggingFaceProvider(cfg.Sentiment, zapLogger)
	tagger := sentiment.NewTagger(sentimentProvider, zapLogger)

	chatService, err := chat.NewService(
		cfg.Chat,
		userRepository,
		lineClient,
		eventBus,
		llmProvider,
		tagger,
		common.NewRealClock(),
		zapLogger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize chat service", "error", err)
	}

	logger.Info("Services initialized",
		"llm_model", cfg.LLM.Model,
		"history_limit", cfg.Chat.HistoryLimit)

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, logger, chatService, cfg.Line.ChannelSecret)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Drain in-flight async pushes before stopping
	eventBusCtx, eventBusCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer eventBusCancel()

	done := make(chan struct{})
	go func() {
		if err := eventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
		close(done)
	}()

	select {
	case <-eventBusCtx.Done():
		logger.Warn("Event bus shutdown timed out")
	case <-done:
		logger.Info("Event bus closed successfully")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
