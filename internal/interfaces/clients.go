package interfaces

import (
	"context"
)

// TextGenerator is a remote text-generation backend (Hugging Face, Gemini, Claude)
type TextGenerator interface {
	// Name identifies the provider in logs and responses
	Name() string

	// GenerateText sends the prompt and returns the generated text only
	GenerateText(ctx context.Context, prompt string) (string, error)
}
