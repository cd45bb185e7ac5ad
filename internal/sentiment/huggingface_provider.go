package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lume-api/internal/common"
	"lume-api/internal/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// huggingFaceProvider implements the Provider interface against the
// Hugging Face Inference API
type huggingFaceProvider struct {
	config     config.SentimentConfig
	logger     *zap.Logger
	httpClient *http.Client
}

// inferenceRequest is the request body for the inference API
type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// inferenceScore is one candidate label with its confidence
type inferenceScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// inferenceError is the error body the inference API returns
type inferenceError struct {
	Error string `json:"error"`
}

// NewHuggingFaceProvider creates a new Provider backed by the Hugging Face
// Inference API
func NewHuggingFaceProvider(cfg config.SentimentConfig, logger *zap.Logger) Provider {
	return &huggingFaceProvider{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Classify scores the text and maps the winning label onto the emotion set
func (p *huggingFaceProvider) Classify(ctx context.Context, text string) (common.EmotionLabel, error) {
	var label common.EmotionLabel

	operation := func() error {
		var err error
		label, err = p.callAPI(ctx, text)
		if err != nil {
			if IsRetryable(err) {
				p.logger.Warn("Retryable classification error, will retry", zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 500 * time.Millisecond
	strategy.MaxInterval = 10 * time.Second
	strategy.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(strategy, uint64(p.config.MaxRetries)), ctx))
	if err != nil {
		return common.EmotionUnknown, err
	}

	return label, nil
}

func (p *huggingFaceProvider) callAPI(ctx context.Context, text string) (common.EmotionLabel, error) {
	requestBody, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return common.EmotionUnknown, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.APIEndpoint, bytes.NewReader(requestBody))
	if err != nil {
		return common.EmotionUnknown, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return common.EmotionUnknown, fmt.Errorf("failed to call inference API: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return common.EmotionUnknown, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		description := string(responseBody)
		var apiErr inferenceError
		if json.Unmarshal(responseBody, &apiErr) == nil && apiErr.Error != "" {
			description = apiErr.Error
		}
		return common.EmotionUnknown, APIError{StatusCode: resp.StatusCode, Description: description}
	}

	return parseInferenceResponse(responseBody)
}

// parseInferenceResponse extracts the top-scoring label from the nested
// candidate list the inference API returns
func parseInferenceResponse(body []byte) (common.EmotionLabel, error) {
	var candidates [][]inferenceScore
	if err := json.Unmarshal(body, &candidates); err != nil {
		return common.EmotionUnknown, fmt.Errorf("failed to parse inference response: %w", err)
	}

	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return common.EmotionUnknown, fmt.Errorf("inference response contained no candidates")
	}

	best := candidates[0][0]
	for _, c := range candidates[0][1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	return mapLabel(best.Label), nil
}

// mapLabel folds the model's label vocabulary onto the fixed emotion set
func mapLabel(raw string) common.EmotionLabel {
	normalized := strings.ToLower(raw)
	switch {
	case strings.Contains(normalized, "positive"):
		return common.EmotionPositive
	case strings.Contains(normalized, "negative"):
		return common.EmotionNegative
	default:
		return common.EmotionNeutral
	}
}
