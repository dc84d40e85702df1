package prompt

import (
	"context"

	"adcraft/internal/domain"
)

const (
	staticProviderName = "static"
	geminiProviderName = "gemini"
	openAIProviderName = "openai"
)

// CompletionRequest carries the rendered prompt together with the request it
// was built from.
type CompletionRequest struct {
	Prompt string
	Ad     domain.AdRequest
}

// Completer sends a prompt to a language model and returns the raw reply,
// which is expected to be a JSON object. Implementations do not retry.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}
