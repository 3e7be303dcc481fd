package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for report text generation.
type Client interface {
	GenerateReportContent(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient stands in when no provider credentials are present.
// Callers fall back to deterministic report content.
type PlaceholderClient struct{}

// GenerateReportContent returns ErrNotConfigured.
func (PlaceholderClient) GenerateReportContent(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
