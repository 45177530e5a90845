package translate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/MimeLyc/tagged-doc-translator/internal/segment"
	"github.com/MimeLyc/tagged-doc-translator/pkg/retry"
)

// Completer is the upstream chat surface the client drives. Satisfied
// by *llm.Client.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Translator sends one request payload to the external service and
// returns its raw response text. Classification of the response
// (refusal, parseability) is the caller's concern.
type Translator interface {
	Translate(ctx context.Context, dir segment.Direction, prompt string) (string, error)
}

// Client wraps a Completer with the retry policy for transport
// failures: up to MaxRetries attempts, 2^attempt backoff between them.
// Refusals are ordinary successful responses at this layer and are
// never retried.
type Client struct {
	completer Completer
	target    language.Tag
	policy    retry.Policy
}

// NewClient builds a translation client for one target language.
// backoffBase is the unit for the exponential backoff; maxRetries <= 0
// falls back to 3, an undefined target to Traditional Chinese.
func NewClient(completer Completer, target language.Tag, maxRetries int, backoffBase time.Duration) *Client {
	if target == language.Und {
		target = language.TraditionalChinese
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &Client{
		completer: completer,
		target:    target,
		policy: retry.Policy{
			MaxAttempts: maxRetries,
			Backoff:     retry.Exponential(backoffBase),
		},
	}
}

// Translate performs the service call with retry/backoff. The returned
// text is raw and may still be a refusal or malformed.
func (c *Client) Translate(ctx context.Context, dir segment.Direction, prompt string) (string, error) {
	systemPrompt := BuildSystemPrompt(dir, c.target)

	var response string
	err := retry.Do(ctx, c.policy, func() error {
		var callErr error
		response, callErr = c.completer.Complete(ctx, systemPrompt, prompt)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("translation service call failed: %w", err)
	}
	return response, nil
}
