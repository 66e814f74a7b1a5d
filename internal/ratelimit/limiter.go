// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"time"
)

// Config holds the fixed-window parameters for one protected operation.
type Config struct {
	Window      time.Duration
	MaxRequests int
}

// Limiter admits or denies a request for a client identifier. Each protected
// operation owns its own limiter instance; implementations are safe for
// concurrent use.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// Defaults for the two protected operations.
func GenerationConfig() Config {
	return Config{Window: 60 * time.Second, MaxRequests: 10}
}

func PublishConfig() Config {
	return Config{Window: 60 * time.Second, MaxRequests: 5}
}
