package providers

import (
	"context"
	"errors"
)

// ErrSummarizerUnauthorized indicates the LLM provider rejected our credentials.
var ErrSummarizerUnauthorized = errors.New("summarizer provider unauthorized")

// SummarizerProvider generates clinical text from a prompt. Implementations
// return the raw model output; parsing into structured reports is the
// summarize service's job.
type SummarizerProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name identifies the provider in response payloads ("openai", "stub").
	Name() string

	// Model identifies the model used for generation.
	Model() string
}
