package llm

import "context"

// Provider defines the interface for chat-completion backends
type Provider interface {
	// Complete sends a persona instruction and a composite user prompt to the
	// model and returns the trimmed reply text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
