// Package ratelimit implements the fixed-window login throttle. State is
// per-process and keyed by client network origin, so it also slows
// enumeration attacks spread across many emails from one address.
package ratelimit

import (
	"sync"
	"time"

	apperrors "github.com/ejifeanyi/lintra/internal/errors"
)

// Limiter is a fixed-window rate limiter that tracks attempt counts per key
// in memory.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	counters map[string]*counter
}

type counter struct {
	count    int
	windowAt time.Time
}

func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:      max,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*counter),
	}
}

// Allow records an attempt for key and reports whether it is within the
// ceiling. The count increments on every call regardless of what the caller
// does afterwards; once the window elapses the key starts a fresh window.
func (l *Limiter) Allow(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowAt) >= l.window {
		// New window.
		l.counters[key] = &counter{count: 1, windowAt: now}
		return nil
	}

	c.count++
	if c.count > l.max {
		return apperrors.ErrTooManyLoginAttempts
	}

	return nil
}
