package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lume-api/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// completionService is the slice of the OpenAI client this provider needs
type completionService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// openAIProvider implements the Provider interface using the OpenAI API
type openAIProvider struct {
	chat   completionService
	config config.LLMConfig
	logger *zap.Logger
}

// NewOpenAIProvider creates a new OpenAI-backed Provider
func NewOpenAIProvider(cfg config.LLMConfig, logger *zap.Logger) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(time.Duration(cfg.Timeout)*time.Second),
	)

	return &openAIProvider{
		chat:   &client.Chat.Completions,
		config: cfg,
		logger: logger,
	}, nil
}

// Complete sends the prompts to the model and returns the trimmed reply
func (p *openAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(p.config.Temperature),
	}

	var reply string
	operation := func() error {
		resp, err := p.chat.New(ctx, params)
		if err != nil {
			p.logger.Warn("Chat completion call failed", zap.Error(err))
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("chat completion returned no choices")
		}
		reply = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 1 * time.Second
	strategy.MaxInterval = 20 * time.Second
	strategy.MaxElapsedTime = 90 * time.Second

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(strategy, uint64(p.config.MaxRetries)), ctx))
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	return reply, nil
}
