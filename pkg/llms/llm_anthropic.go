package llms

import (
	"context"

	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/cropwise/cropwise/config"
)

const AnthropicAPIKeyNotSetError = "CROPWISE_ANTHROPIC_API_KEY is not set" //nolint:gosec

func NewAnthropicLLM(_ context.Context, cfg *config.Config) (*CropwiseLLM, error) {
	apiKey := cfg.LLM.AnthropicAPIKey
	if apiKey == "" {
		return nil, NewLLMError(AnthropicAPIKeyNotSetError, nil)
	}

	retryableHTTPClient := NewRetryableHTTPClient(MaxAPIRequestAttempts, requestTimeout(cfg))

	llm, err := anthropic.New(
		anthropic.WithModel(cfg.LLM.Model),
		anthropic.WithToken(apiKey),
		anthropic.WithHTTPClient(retryableHTTPClient.StandardClient()),
	)
	if err != nil {
		return nil, NewLLMError("failed to create anthropic client", err)
	}

	return newCropwiseLLM(llm, "anthropic", cfg), nil
}
