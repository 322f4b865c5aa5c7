package llms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/pkg/models"
)

func newOpenAITestServer(t *testing.T, status int) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var requests []map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests = append(requests, body)

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"bad request"}}`))
			return
		}

		switch r.URL.Path {
		case "/chat/completions":
			_, _ = w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"created": 1700000000,
				"model": "gpt-3.5-turbo",
				"choices": [{
					"index": 0,
					"message": {"role": "assistant", "content": "Grow paddy this kharif."},
					"finish_reason": "stop"
				}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
			}`))
		case "/embeddings":
			_, _ = w.Write([]byte(`{
				"object": "list",
				"data": [{"object": "embedding", "embedding": [0.1, 0.2, 0.3], "index": 0}],
				"model": "text-embedding-ada-002",
				"usage": {"prompt_tokens": 3, "total_tokens": 3}
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func openAITestConfig(endpoint string) *config.Config {
	return &config.Config{
		LLM: config.LLM{
			Service:        "openai",
			Model:          "gpt-3.5-turbo",
			OpenAIAPIKey:   "test-key",
			OpenAIEndpoint: endpoint,
			Temperature:    0.7,
			TopP:           0.9,
			MaxTokens:      1000,
		},
		Embeddings: config.EmbeddingsConfig{
			Service: "openai",
			Model:   "text-embedding-ada-002",
		},
	}
}

func TestOpenAILLMCall(t *testing.T) {
	srv, requests := newOpenAITestServer(t, http.StatusOK)
	cfg := openAITestConfig(srv.URL)

	llm, err := NewOpenAILLM(context.Background(), cfg)
	require.NoError(t, err)

	reply, err := llm.Call(context.Background(), "You are an agricultural advisor.", "What should I grow?", CallOptions(cfg)...)
	require.NoError(t, err)
	assert.Equal(t, "Grow paddy this kharif.", reply)

	require.Len(t, *requests, 1)
	messages, ok := (*requests)[0]["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
	assert.Equal(t, "gpt-3.5-turbo", (*requests)[0]["model"])
}

func TestOpenAILLMCallBadRequest(t *testing.T) {
	srv, requests := newOpenAITestServer(t, http.StatusBadRequest)

	llm, err := NewOpenAILLM(context.Background(), openAITestConfig(srv.URL))
	require.NoError(t, err)

	_, err = llm.Call(context.Background(), "system", "user")
	assert.Error(t, err)
	// 400s are not retried
	assert.Len(t, *requests, 1)
}

func TestOpenAIEmbedder(t *testing.T) {
	srv, _ := newOpenAITestServer(t, http.StatusOK)

	embedder, err := NewEmbedder(context.Background(), openAITestConfig(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "openai", embedder.Name())

	v, err := embedder.Embed(context.Background(), "black soil cotton")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, v)
}

func TestOpenAIEmbedderUnavailable(t *testing.T) {
	srv, _ := newOpenAITestServer(t, http.StatusBadRequest)

	embedder, err := NewEmbedder(context.Background(), openAITestConfig(srv.URL))
	require.NoError(t, err)

	_, err = embedder.Embed(context.Background(), "black soil cotton")
	assert.ErrorIs(t, err, models.ErrEmbeddingUnavailable)
}
