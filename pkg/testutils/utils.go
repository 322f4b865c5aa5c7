package testutils

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/pkg/models"
)

// NewTestConfig returns a configuration with the service defaults and no
// language model.
func NewTestConfig() *config.Config {
	return &config.Config{
		LLM: config.LLM{
			Model:        "gpt-3.5-turbo",
			Temperature:  0.7,
			TopP:         0.9,
			MaxTokens:    1000,
			Timeout:      30 * time.Second,
			ProbeTimeout: 5 * time.Second,
		},
		Embeddings: config.EmbeddingsConfig{Service: "local", Dimensions: 512},
		RAG: config.RAGConfig{
			SimilarityThreshold: 0.7,
			SearchLimit:         5,
			MaxContextLength:    4000,
		},
		Cache: config.CacheConfig{
			Type:        "memory",
			TTL:         time.Hour,
			CheckPeriod: 10 * time.Minute,
		},
		Storage: config.StorageConfig{Type: "memory"},
		Server:  config.ServerConfig{Port: 5001, MaxRequestSize: 10 << 20},
		Log:     config.LogConfig{Level: "debug"},
	}
}

var _ models.LLM = &FakeLLM{}

// FakeLLM replies with a fixed response or error and records its prompts.
type FakeLLM struct {
	Response string
	Err      error

	calls   atomic.Int64
	mu      sync.Mutex
	systems []string
	users   []string
}

func (f *FakeLLM) Call(
	_ context.Context,
	system string,
	user string,
	_ ...llms.CallOption,
) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.systems = append(f.systems, system)
	f.users = append(f.users, user)
	f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *FakeLLM) GetTokenCount(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func (f *FakeLLM) Name() string {
	return "fake"
}

func (f *FakeLLM) Calls() int {
	return int(f.calls.Load())
}

// LastSystemPrompt returns the most recent system instruction.
func (f *FakeLLM) LastSystemPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.systems) == 0 {
		return ""
	}
	return f.systems[len(f.systems)-1]
}

var _ models.Embedder = &FakeEmbedder{}

// FakeEmbedder maps text onto one axis per keyword, so texts sharing
// keywords are similar and texts sharing none have similarity 0.
type FakeEmbedder struct {
	Keywords []string
	Err      error

	calls atomic.Int64
}

func NewFakeEmbedder(keywords ...string) *FakeEmbedder {
	return &FakeEmbedder{Keywords: keywords}
}

func (f *FakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls.Add(1)
	if f.Err != nil {
		return nil, f.Err
	}

	lower := strings.ToLower(text)
	v := make([]float32, len(f.Keywords))
	for i, k := range f.Keywords {
		v[i] = float32(strings.Count(lower, strings.ToLower(k)))
	}
	return v, nil
}

func (f *FakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *FakeEmbedder) Dimensions() int {
	return len(f.Keywords)
}

func (f *FakeEmbedder) Name() string {
	return "fake"
}

func (f *FakeEmbedder) Calls() int {
	return int(f.calls.Load())
}
