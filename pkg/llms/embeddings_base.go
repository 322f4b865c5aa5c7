package llms

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/pkg/models"
)

// NewEmbedder returns the configured embedding client. The openai service
// without an API key falls back to the local hashing embedder.
func NewEmbedder(_ context.Context, cfg *config.Config) (models.Embedder, error) {
	switch cfg.Embeddings.Service {
	case "openai":
		if cfg.LLM.OpenAIAPIKey == "" {
			log.Warnf("%s, using local embeddings", OpenAIAPIKeyNotSetError)
			return NewLocalEmbedder(cfg.Embeddings.Dimensions), nil
		}
		client, err := openai.New(openAIOptions(cfg, "")...)
		if err != nil {
			return nil, NewLLMError("failed to create openai embeddings client", err)
		}
		return NewRemoteEmbedder("openai", client, requestTimeout(cfg)), nil
	case "ollama":
		client, err := ollama.New(ollamaOptions(cfg, cfg.Embeddings.Model)...)
		if err != nil {
			return nil, NewLLMError("failed to create ollama embeddings client", err)
		}
		return NewRemoteEmbedder("ollama", client, requestTimeout(cfg)), nil
	case "", "local":
		return NewLocalEmbedder(cfg.Embeddings.Dimensions), nil
	default:
		return nil, fmt.Errorf("invalid embeddings service: %s", cfg.Embeddings.Service)
	}
}

// EmbeddingCreator is implemented by the langchaingo openai and ollama clients.
type EmbeddingCreator interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

var _ models.Embedder = &RemoteEmbedder{}

// RemoteEmbedder delegates to an external embedding model. Every failure is
// reported as models.ErrEmbeddingUnavailable.
type RemoteEmbedder struct {
	client  EmbeddingCreator
	name    string
	timeout time.Duration
}

func NewRemoteEmbedder(name string, client EmbeddingCreator, timeout time.Duration) *RemoteEmbedder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteEmbedder{client: client, name: name, timeout: timeout}
}

func (e *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (e *RemoteEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	thisCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	embeddings, err := e.client.CreateEmbedding(thisCtx, texts)
	if err != nil {
		return nil, models.NewEmbeddingUnavailableError(e.name, err)
	}
	if len(embeddings) != len(texts) {
		return nil, models.NewEmbeddingUnavailableError(
			e.name,
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings)),
		)
	}

	return embeddings, nil
}

func (e *RemoteEmbedder) Dimensions() int {
	return 0
}

func (e *RemoteEmbedder) Name() string {
	return e.name
}
