// Package ratelimit throttles the JSON API per caller. Two backends: an
// in-process token bucket and a fixed window shared through Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Memory keeps one token bucket per key. limit requests are allowed per
// window, refilled evenly.
type Memory struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	buckets   map[string]*bucket
	lastPrune time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Memory{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now()

	m.mu.Lock()
	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Every(m.window/time.Duration(m.limit)), m.limit)}
		m.buckets[key] = b
	}
	b.seen = now
	m.pruneLocked(now)
	m.mu.Unlock()

	res := b.lim.ReserveN(now, 1)
	if !res.OK() {
		return Result{Allowed: false, RetryAfter: m.window}, nil
	}

	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return Result{Allowed: false, RetryAfter: d}, nil
	}

	return Result{Allowed: true}, nil
}

// buckets untouched for two windows are full again and can be dropped
func (m *Memory) pruneLocked(now time.Time) {
	if now.Sub(m.lastPrune) < m.window {
		return
	}
	m.lastPrune = now

	for k, b := range m.buckets {
		if now.Sub(b.seen) > 2*m.window {
			delete(m.buckets, k)
		}
	}
}
