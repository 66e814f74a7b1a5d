// internal/ratelimit/memory.go
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count         int
	windowResetAt time.Time
}

// Memory is an in-process fixed-window limiter. The read-then-increment on an
// identifier's window is a critical section, so the whole check runs under
// one mutex.
type Memory struct {
	cfg Config

	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemory(cfg Config) *Memory {
	return &Memory{
		cfg:     cfg,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, identifier string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[identifier]
	if !ok || now.After(w.windowResetAt) {
		m.windows[identifier] = &window{
			count:         1,
			windowResetAt: now.Add(m.cfg.Window),
		}
		return true, nil
	}

	if w.count >= m.cfg.MaxRequests {
		return false, nil
	}
	w.count++
	return true, nil
}
