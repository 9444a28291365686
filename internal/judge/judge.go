// Package judge provides the LLM judge port and its OpenAI-compatible HTTP
// adapter. The scoring engine depends only on the Judge interface; provider
// routing, key rotation, and transport live behind it.
package judge

import (
	"context"
	"errors"
)

// Judge is a single-turn completion call against the scoring model. The
// returned string is the raw assistant message; parsing it is the caller's
// concern. Transport and provider failures surface as errors and are never
// repaired here.
type Judge interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNoAPIKey indicates the provider was configured without any key.
	ErrNoAPIKey = errors.New("judge: no API key configured")

	// ErrEmptyResponse indicates the provider returned no choices.
	ErrEmptyResponse = errors.New("judge: provider returned no choices")

	// ErrProviderStatus indicates a non-2xx provider response.
	ErrProviderStatus = errors.New("judge: provider returned error status")
)

// Func adapts a plain function to the Judge interface, mainly for tests.
type Func func(ctx context.Context, prompt string) (string, error)

// Classify implements Judge.
func (f Func) Classify(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
