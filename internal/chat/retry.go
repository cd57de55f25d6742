package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// RetryConfig configures the retry behavior for LLM calls.
type RetryConfig struct {
	MaxRetries      int           // Retry attempts after the first call
	InitialInterval time.Duration // First backoff interval, doubled per retry
	MaxInterval     time.Duration // Backoff ceiling
}

// DefaultRetryConfig returns sensible defaults for LLM API calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// transientMarkers lists provider error substrings worth retrying,
// matched case-insensitively. Substring matching is used because Genkit
// and the provider SDKs expose no typed errors for transient failures;
// revisit when they do.
var transientMarkers = []string{
	// rate limiting
	"rate limit", "quota exceeded", "429",
	// transient server errors
	"500", "502", "503", "504", "unavailable",
	// network errors
	"connection reset", "timeout", "temporary",
}

// isTransient reports whether err looks like a transient provider failure.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// executeWithRetry executes the prompt, retrying transient failures with
// exponential backoff. Every attempt passes through the rate limiter, so
// retries cannot stampede a provider that is already throttling us.
func (a *Agent) executeWithRetry(
	ctx context.Context,
	opts []ai.PromptExecuteOption,
) (*ai.ModelResponse, error) {
	cfg := a.retryConfig
	backoff := cfg.InitialInterval
	start := time.Now()

	for attempt := 1; ; attempt++ {
		if a.rateLimiter != nil {
			if err := a.rateLimiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		resp, err := a.prompt.Execute(ctx, opts...)
		if err == nil {
			a.logger.Debug("prompt executed",
				"attempts", attempt,
				"elapsed", time.Since(start),
			)
			return resp, nil
		}

		if !isTransient(err) {
			return nil, fmt.Errorf("prompt execute: %w", err)
		}
		if attempt > cfg.MaxRetries {
			return nil, fmt.Errorf("prompt execute gave up after %d attempts (elapsed: %v): %w",
				attempt, time.Since(start), err)
		}

		a.logger.Debug("transient model error, backing off",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context canceled during retry: %w", ctx.Err())
		case <-time.After(backoff):
			backoff = min(backoff*2, cfg.MaxInterval)
		}
	}
}
