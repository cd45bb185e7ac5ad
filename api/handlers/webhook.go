package handlers

import (
	"io"
	"net/http"

	"lume-api/internal/chat"
	"lume-api/internal/line"
	"lume-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles LINE platform webhook requests
type WebhookHandler struct {
	chatService   chat.Service
	channelSecret string
	logger        *logger.Logger
}

// NewWebhookHandler creates a new WebhookHandler instance
func NewWebhookHandler(chatService chat.Service, channelSecret string, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		chatService:   chatService,
		channelSecret: channelSecret,
		logger:        logger,
	}
}

// HandleCallback processes incoming LINE webhook events. Bodies that fail
// signature verification are rejected with 400; everything past that point
// returns 200 so the platform does not retry delivery.
func (h *WebhookHandler) HandleCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	signature := c.GetHeader("X-Line-Signature")
	if !line.ValidateSignature(h.channelSecret, body, signature) {
		h.logger.Warn("Rejected webhook with invalid signature",
			"client_ip", c.ClientIP(),
			"body_size", len(body))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid signature"})
		return
	}

	if err := h.chatService.HandleWebhook(c.Request.Context(), body); err != nil {
		h.logger.Error("Failed to process webhook",
			"error", err,
			"body_size", len(body))
		// Delivery is acknowledged regardless; a retry would replay the
		// same malformed payload.
		c.JSON(http.StatusOK, gin.H{"message": "OK"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}
