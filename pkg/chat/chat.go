// Package chat answers free-form farmer questions.
package chat

import (
	"context"
	"strings"
	"time"

	"dario.cat/mergo"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/llms"
	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/recommend"
)

var log = internal.GetLogger()

var _ models.ChatResponder = &Responder{}

// Responder replies through the language model and falls back to a canned
// reply whenever the model is absent or fails. Replies are never cached.
type Responder struct {
	llm models.LLM
	cfg *config.Config
	now func() time.Time
}

func NewResponder(llm models.LLM, cfg *config.Config) *Responder {
	return &Responder{llm: llm, cfg: cfg, now: time.Now}
}

// Respond returns an error only for an empty message.
func (r *Responder) Respond(
	ctx context.Context,
	message string,
	sessionContext map[string]any,
	language string,
) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", models.NewBadRequestError("message is required")
	}
	if language == "" {
		language = models.DefaultLanguage
	}

	if r.llm == nil {
		return FallbackReply(language), nil
	}

	prompt, err := internal.ParsePrompt(chatSystemPromptTemplate, chatPromptData{
		SessionContext: internal.PrettyJSON(r.withDefaults(sessionContext)),
		Language:       language,
	})
	if err != nil {
		log.Errorf("failed to render chat prompt: %s", err)
		return FallbackReply(language), nil
	}

	reply, err := r.llm.Call(ctx, prompt, message, llms.CallOptions(r.cfg)...)
	if err != nil {
		log.Warnf(
			"chat model unavailable, serving fallback reply: %s",
			models.NewModelUnreachableError("chat", err),
		)
		return FallbackReply(language), nil
	}
	if strings.TrimSpace(reply) == "" {
		return FallbackReply(language), nil
	}

	return reply, nil
}

// withDefaults fills in the current season and month when the caller did
// not send them. The caller's map is not modified.
func (r *Responder) withDefaults(sessionContext map[string]any) map[string]any {
	now := r.now()
	merged := map[string]any{}
	for k, v := range sessionContext {
		merged[k] = v
	}
	defaults := map[string]any{
		"currentSeason": recommend.CurrentSeason(now),
		"currentMonth":  now.Month().String(),
	}
	if err := mergo.Merge(&merged, defaults); err != nil {
		log.Warnf("failed to merge session context defaults: %s", err)
	}
	return merged
}
