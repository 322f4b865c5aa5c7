package llms

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// TokenCounter counts prompt tokens with tiktoken. The encoding is loaded on
// first use; when it cannot be loaded the count is estimated at four
// characters per token.
type TokenCounter struct {
	model string
	once  sync.Once
	tkm   *tiktoken.Tiktoken
}

func NewTokenCounter(model string) *TokenCounter {
	return &TokenCounter{model: model}
}

func (t *TokenCounter) Count(text string) int {
	t.once.Do(t.load)
	if t.tkm == nil {
		return EstimateTokens(text)
	}
	return len(t.tkm.Encode(text, nil, nil))
}

func (t *TokenCounter) load() {
	tkm, err := tiktoken.EncodingForModel(t.model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(defaultEncoding)
	}
	if err != nil {
		log.Debugf("tiktoken encoding unavailable, estimating token counts: %s", err)
		return
	}
	t.tkm = tkm
}

func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}
