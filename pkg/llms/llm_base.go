package llms

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tmc/langchaingo/llms"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

const DefaultTimeout = 30 * time.Second
const MaxAPIRequestAttempts = 3
const InvalidLLMModelError = "llm model is not set or is invalid"

var log = internal.GetLogger()

// NewLLMClient returns the configured language model. In demo mode it
// returns nil and no error: callers serve fallback answers instead.
func NewLLMClient(ctx context.Context, cfg *config.Config) (models.LLM, error) {
	if cfg.DemoMode() {
		log.Warn("llm.service is not set, running in demo mode")
		return nil, nil
	}

	if key := missingAPIKey(cfg); key != "" {
		log.Warnf("%s, running in demo mode", key)
		return nil, nil
	}

	var llm *CropwiseLLM
	var err error
	switch cfg.LLM.Service {
	case "openai":
		llm, err = NewOpenAILLM(ctx, cfg)
	case "anthropic":
		llm, err = NewAnthropicLLM(ctx, cfg)
	case "ollama":
		llm, err = NewOllamaLLM(ctx, cfg)
	default:
		return nil, fmt.Errorf("invalid LLM service: %s", cfg.LLM.Service)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("using %s llm %s", llm.Name(), cfg.LLM.Model)
	return llm, nil
}

// missingAPIKey names the unset credential of a hosted service, if any.
func missingAPIKey(cfg *config.Config) string {
	switch {
	case cfg.LLM.Service == "openai" && cfg.LLM.OpenAIAPIKey == "":
		return OpenAIAPIKeyNotSetError
	case cfg.LLM.Service == "anthropic" && cfg.LLM.AnthropicAPIKey == "":
		return AnthropicAPIKeyNotSetError
	}
	return ""
}

type LLMError struct {
	message       string
	originalError error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error: %s (original error: %v)", e.message, e.originalError)
}

func (e *LLMError) Unwrap() error {
	return e.originalError
}

func NewLLMError(message string, originalError error) *LLMError {
	return &LLMError{message: message, originalError: originalError}
}

var _ models.LLM = &CropwiseLLM{}

// CropwiseLLM adapts a langchaingo model to models.LLM.
type CropwiseLLM struct {
	llm     llms.Model
	name    string
	timeout time.Duration
	tokens  *TokenCounter
}

func newCropwiseLLM(llm llms.Model, name string, cfg *config.Config) *CropwiseLLM {
	timeout := cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CropwiseLLM{
		llm:     llm,
		name:    name,
		timeout: timeout,
		tokens:  NewTokenCounter(cfg.LLM.Model),
	}
}

func (c *CropwiseLLM) Call(ctx context.Context,
	system string,
	user string,
	options ...llms.CallOption,
) (string, error) {
	// If the LLM is not initialized, return an error
	if c.llm == nil {
		return "", NewLLMError(InvalidLLMModelError, nil)
	}

	thisCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := c.llm.GenerateContent(thisCtx, messages, options...)
	if err != nil {
		return "", NewLLMError("error while generating content", err)
	}
	if len(resp.Choices) == 0 {
		return "", NewLLMError("model returned no choices", nil)
	}

	return resp.Choices[0].Content, nil
}

// GetTokenCount returns the number of tokens in the text
func (c *CropwiseLLM) GetTokenCount(text string) (int, error) {
	return c.tokens.Count(text), nil
}

func (c *CropwiseLLM) Name() string {
	return c.name
}

// CallOptions maps the configured sampling parameters to langchaingo options.
func CallOptions(cfg *config.Config) []llms.CallOption {
	options := []llms.CallOption{
		llms.WithTemperature(cfg.LLM.Temperature),
	}
	if cfg.LLM.TopP > 0 {
		options = append(options, llms.WithTopP(cfg.LLM.TopP))
	}
	if cfg.LLM.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(cfg.LLM.MaxTokens))
	}
	return options
}

func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *retryablehttp.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.HTTPClient.Transport = otelhttp.NewTransport(
		retryableHTTPClient.HTTPClient.Transport,
	)
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryPolicy

	return retryableHTTPClient
}

// retryPolicy is a retryablehttp.CheckRetry function. It is used to determine
// whether a request should be retried or not.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Do not retry 400 errors as they're used by OpenAI to indicate maximum
	// context length exceeded
	if resp != nil && resp.StatusCode == http.StatusBadRequest {
		return false, err
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}
