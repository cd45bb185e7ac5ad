package sentiment

import (
	"context"

	"lume-api/internal/common"
)

// Provider defines the interface for sentiment classification backends
type Provider interface {
	// Classify scores a piece of text and returns the mapped emotion label.
	// Implementations return an error on transport or model failure; label
	// fallback is the Tagger's responsibility.
	Classify(ctx context.Context, text string) (common.EmotionLabel, error)
}
