package sentiment

import (
	"context"

	"lume-api/internal/common"

	"go.uber.org/zap"
)

// Tagger attaches an emotion label to user text. Classification failures are
// absorbed here: the caller always receives a usable label, never an error.
type Tagger struct {
	provider Provider
	logger   *zap.Logger
}

// NewTagger creates a new Tagger instance
func NewTagger(provider Provider, logger *zap.Logger) *Tagger {
	return &Tagger{
		provider: provider,
		logger:   logger,
	}
}

// Classify returns the emotion label for the text, falling back to unknown
// on any provider failure
func (t *Tagger) Classify(ctx context.Context, text string) common.EmotionLabel {
	label, err := t.provider.Classify(ctx, text)
	if err != nil {
		t.logger.Warn("Emotion classification failed, tagging as unknown", zap.Error(err))
		return common.EmotionUnknown
	}
	return label
}
