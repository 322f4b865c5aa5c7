package llms

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/cropwise/cropwise/config"
)

// NewOllamaLLM talks to a local model runner. No credentials are needed.
func NewOllamaLLM(_ context.Context, cfg *config.Config) (*CropwiseLLM, error) {
	llm, err := ollama.New(ollamaOptions(cfg, cfg.LLM.Model)...)
	if err != nil {
		return nil, NewLLMError("failed to create ollama client", err)
	}

	return newCropwiseLLM(llm, "ollama", cfg), nil
}

func ollamaOptions(cfg *config.Config, model string) []ollama.Option {
	retryableHTTPClient := NewRetryableHTTPClient(MaxAPIRequestAttempts, requestTimeout(cfg))

	return []ollama.Option{
		ollama.WithModel(model),
		ollama.WithServerURL(cfg.LLM.OllamaURL),
		ollama.WithHTTPClient(retryableHTTPClient.StandardClient()),
	}
}
