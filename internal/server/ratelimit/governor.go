// Package ratelimit bounds the call rate of named capabilities. Each
// capability (for example "api" or "login") gets its own token bucket
// sized from configuration; callers gate work with TryAcquire.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config describes one capability: at most Limit calls per Window.
type Config struct {
	Window time.Duration
	Limit  int
}

// Governor is process-wide shared state; all request handlers contend on
// the same per-capability counters. Safe for concurrent use.
type Governor struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	onDenied func(capability string)
}

// New builds a Governor from per-capability configs. Capabilities with a
// non-positive window or limit are treated as unlimited.
func New(configs map[string]Config) *Governor {
	limiters := make(map[string]*rate.Limiter, len(configs))
	for name, cfg := range configs {
		if cfg.Window <= 0 || cfg.Limit <= 0 {
			continue
		}
		// burst = limit, refilled evenly over the window
		limiters[name] = rate.NewLimiter(rate.Limit(float64(cfg.Limit)/cfg.Window.Seconds()), cfg.Limit)
	}
	return &Governor{limiters: limiters}
}

// OnDenied registers a hook invoked on every denial, after the decision is
// made. Intended for logging; it cannot alter the outcome.
func (g *Governor) OnDenied(fn func(capability string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onDenied = fn
}

// TryAcquire reports whether a call under the named capability may proceed.
// It never blocks or queues. Unconfigured capabilities are always allowed.
func (g *Governor) TryAcquire(capability string) bool {
	g.mu.RLock()
	limiter := g.limiters[capability]
	onDenied := g.onDenied
	g.mu.RUnlock()

	if limiter == nil {
		return true
	}
	if limiter.Allow() {
		return true
	}
	if onDenied != nil {
		onDenied(capability)
	}
	return false
}
