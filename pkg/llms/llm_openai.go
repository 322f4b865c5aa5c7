package llms

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/cropwise/cropwise/config"
)

const OpenAIAPIKeyNotSetError = "CROPWISE_OPENAI_API_KEY is not set" //nolint:gosec

func NewOpenAILLM(_ context.Context, cfg *config.Config) (*CropwiseLLM, error) {
	if cfg.LLM.OpenAIAPIKey == "" {
		return nil, NewLLMError(OpenAIAPIKeyNotSetError, nil)
	}

	llm, err := openai.New(openAIOptions(cfg, cfg.LLM.Model)...)
	if err != nil {
		return nil, NewLLMError("failed to create openai client", err)
	}

	return newCropwiseLLM(llm, "openai", cfg), nil
}

func openAIOptions(cfg *config.Config, model string) []openai.Option {
	retryableHTTPClient := NewRetryableHTTPClient(MaxAPIRequestAttempts, requestTimeout(cfg))

	options := []openai.Option{
		openai.WithHTTPClient(retryableHTTPClient.StandardClient()),
		openai.WithToken(cfg.LLM.OpenAIAPIKey),
		openai.WithEmbeddingModel(cfg.Embeddings.Model),
	}
	if model != "" {
		options = append(options, openai.WithModel(model))
	}
	// A custom endpoint covers OpenAI-compatible servers
	if cfg.LLM.OpenAIEndpoint != "" {
		options = append(options, openai.WithBaseURL(cfg.LLM.OpenAIEndpoint))
	}

	return options
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.LLM.Timeout > 0 {
		return cfg.LLM.Timeout
	}
	return DefaultTimeout
}
