package models

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// LLM is a chat completion model.
type LLM interface {
	// Call sends a system instruction and a user message and returns the
	// model's text reply.
	Call(
		ctx context.Context,
		system string,
		user string,
		options ...llms.CallOption,
	) (string, error)
	// GetTokenCount returns the number of tokens in the given text
	GetTokenCount(text string) (int, error)
	Name() string
}

// Embedder turns text into vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions is the vector length, or 0 when defined by a remote model.
	Dimensions() int
	Name() string
}
