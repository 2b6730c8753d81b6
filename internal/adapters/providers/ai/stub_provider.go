package ai

import (
	"context"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
)

// StubSummarizerProvider implements a canned summarizer used when no LLM
// API key is configured. Responses are clearly marked as stubbed so the
// UI can surface the missing capability instead of failing requests.
type StubSummarizerProvider struct{}

// NewStubSummarizerProvider creates a new stub summarizer provider
func NewStubSummarizerProvider() providers.SummarizerProvider {
	return &StubSummarizerProvider{}
}

// Complete returns a fixed SBAR-shaped response regardless of input.
func (s *StubSummarizerProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return `{
  "situation": "Summarization is not configured on this deployment.",
  "background": "No LLM API key was provided at startup.",
  "assessment": "Structured summaries cannot be generated.",
  "recommendation": "Set OPENAI_API_KEY to enable SBAR generation."
}`, nil
}

// Name identifies the provider in response payloads.
func (s *StubSummarizerProvider) Name() string { return "stub" }

// Model identifies the model used for generation.
func (s *StubSummarizerProvider) Model() string { return "none" }
