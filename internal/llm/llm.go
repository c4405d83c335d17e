package llm

import (
	"context"
	"errors"
)

// Client abstracts text-completion providers for the assist features.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credential is set. The
// assist endpoints translate it into a service-unavailable response.
var ErrNotConfigured = errors.New("llm not configured")

// PlaceholderClient is used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

var _ Client = PlaceholderClient{}
