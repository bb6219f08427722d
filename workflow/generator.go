package workflow

import (
	"context"

	"github.com/mmdatafocus/supplychain_backend/config"
)

// TextGenerator abstracts the external generation service (config.GenAIClient
// in production). The engine never talks to the network directly; tests
// inject fakes.
type TextGenerator interface {
	Available() bool
	Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
	Chat(ctx context.Context, messages []config.ChatMessage, temperature float64, maxTokens int) (string, error)
}
