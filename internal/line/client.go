package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lume-api/internal/config"

	"go.uber.org/zap"
)

// Client defines the two outbound send primitives the platform offers:
// a reply bound to a one-time reply token and an unsolicited push
// addressed by user id.
type Client interface {
	Reply(ctx context.Context, replyToken, text string) error
	Push(ctx context.Context, userID, text string) error
}

// httpClient implements Client against the LINE Messaging API
type httpClient struct {
	config     config.LineConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// NewClient creates a new LINE Messaging API client
func NewClient(cfg config.LineConfig, logger *zap.Logger) (Client, error) {
	if cfg.ChannelToken == "" {
		return nil, ConfigurationError{Field: "channel_token", Reason: "channel access token is required"}
	}

	return &httpClient{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}, nil
}

// Reply sends a text message bound to the reply token of the inciting event
func (c *httpClient) Reply(ctx context.Context, replyToken, text string) error {
	c.logger.Debug("Sending reply",
		zap.Int("text_length", len(text)))

	body := replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	}
	return c.post(ctx, "reply", "/v2/bot/message/reply", body)
}

// Push sends an unsolicited text message addressed by user id
func (c *httpClient) Push(ctx context.Context, userID, text string) error {
	c.logger.Debug("Sending push",
		zap.String("user_id", userID),
		zap.Int("text_length", len(text)))

	body := pushRequest{
		To:       userID,
		Messages: []textMessage{{Type: "text", Text: text}},
	}
	return c.post(ctx, "push", "/v2/bot/message/push", body)
}

func (c *httpClient) post(ctx context.Context, operation, path string, payload interface{}) error {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIEndpoint+path, bytes.NewReader(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.ChannelToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(resp.Body)
		description := string(responseBody)

		var apiErr apiErrorResponse
		if json.Unmarshal(responseBody, &apiErr) == nil && apiErr.Message != "" {
			description = apiErr.Message
		}

		c.logger.Error("LINE API request failed",
			zap.String("operation", operation),
			zap.Int("status_code", resp.StatusCode),
			zap.String("description", description))

		return APIError{
			Operation:   operation,
			StatusCode:  resp.StatusCode,
			Description: description,
		}
	}

	return nil
}
