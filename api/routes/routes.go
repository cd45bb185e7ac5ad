package routes

import (
	"lume-api/api/handlers"
	"lume-api/api/middleware"
	"lume-api/internal/chat"
	"lume-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, logger *logger.Logger, chatService chat.Service, channelSecret string) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger)
	webhookHandler := handlers.NewWebhookHandler(chatService, channelSecret, logger)

	// LINE platform webhook endpoint
	router.POST("/callback", webhookHandler.HandleCallback)

	// Health checks
	router.GET("/health", healthHandler.Check)
	router.GET("/api/v1/health", healthHandler.Check)
}
