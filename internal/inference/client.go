// internal/inference/client.go
package inference

import (
	"context"
	"errors"
	"fmt"

	"template-forge/internal/common/config"
	"template-forge/internal/common/httpclient"
	"template-forge/internal/common/logger"
)

// Classified upstream failures. Each call is a single attempt; retry is a
// user-initiated action, never automatic.
var (
	ErrMissingAPIKey       = errors.New("MISSING_API_KEY")
	ErrUpstreamRateLimited = errors.New("UPSTREAM_RATE_LIMITED")
	ErrUpstreamUnavailable = errors.New("UPSTREAM_UNAVAILABLE")
	ErrTimeout             = errors.New("UPSTREAM_TIMEOUT")
)

// Completer issues one bounded-time completion call against a
// text-generation upstream and returns the raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// New selects the Completer implementation for the configured provider.
func New(cfg config.LLMConfig, client *httpclient.Client, log logger.Logger) (Completer, error) {
	switch cfg.Provider {
	case "hosted":
		return NewHosted(cfg, client, log), nil
	case "openai":
		return NewOpenAI(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
