// internal/ratelimit/memory_test.go
package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_FixedWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter := NewMemory(Config{Window: 60 * time.Second, MaxRequests: 10})
	limiter.now = func() time.Time { return now }

	ctx := context.Background()

	// The 10th call within the window is allowed, the 11th is denied.
	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "call %d should be allowed", i+1)
	}
	allowed, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different identifier is unaffected.
	allowed, err = limiter.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed)

	// After the window elapses the count resets to 1.
	now = now.Add(61 * time.Second)
	allowed, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)

	for i := 0; i < 9; i++ {
		allowed, err = limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestMemory_WindowBoundaryIsExclusive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	limiter := NewMemory(Config{Window: 60 * time.Second, MaxRequests: 1})
	limiter.now = func() time.Time { return now }

	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "a")
	assert.True(t, allowed)

	// Exactly at the reset instant the old window still applies.
	now = now.Add(60 * time.Second)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	now = now.Add(time.Nanosecond)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.True(t, allowed)
}
