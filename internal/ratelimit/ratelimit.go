// Package ratelimit admits callers against a fixed per-minute budget kept in
// process memory. State is neither durable nor shared across replicas.
package ratelimit

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const (
	Window = time.Minute

	DefaultPerMinute = 120

	// idle windows are evicted after this long without a hit
	idleTTL = 2 * Window

	// DefaultCapacity caps tracked addresses; the least recently seen
	// window is dropped first.
	DefaultCapacity = 100_000
)

type Decision struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Duration
}

type window struct {
	mu    sync.Mutex
	count int
	start time.Time
}

type Limiter struct {
	limit    int
	capacity uint64
	now      func() time.Time
	windows  *ttlcache.Cache[string, *window]
}

type Option func(*Limiter)

// WithClock replaces time.Now for window accounting.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithCapacity bounds the number of tracked addresses. Non-positive values
// keep DefaultCapacity.
func WithCapacity(n int) Option {
	return func(l *Limiter) {
		if n > 0 {
			l.capacity = uint64(n)
		}
	}
}

// New returns a limiter admitting perMinute requests per address per window.
// Non-positive limits fall back to DefaultPerMinute. Call Close to stop the
// eviction loop.
func New(perMinute int, opts ...Option) *Limiter {
	if perMinute <= 0 {
		perMinute = DefaultPerMinute
	}

	l := &Limiter{
		limit:    perMinute,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.windows = ttlcache.New(
		ttlcache.WithTTL[string, *window](idleTTL),
		ttlcache.WithCapacity[string, *window](l.capacity),
	)

	go l.windows.Start()

	return l
}

// Allow records a request from addr and reports whether it is admitted.
// Only the window of addr is locked; distinct addresses never contend beyond
// the cache lookup.
func (l *Limiter) Allow(addr string) Decision {
	now := l.now()

	item, _ := l.windows.GetOrSet(addr, &window{start: now})
	w := item.Value()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.count == 0 || now.Sub(w.start) >= Window {
		w.start = now
		w.count = 1
		return Decision{Allowed: true, Count: 1, Limit: l.limit}
	}

	w.count++
	d := Decision{Allowed: w.count <= l.limit, Count: w.count, Limit: l.limit}
	if !d.Allowed {
		d.RetryAfter = max(w.start.Add(Window).Sub(now), time.Second)
	}
	return d
}

func (l *Limiter) Limit() int {
	return l.limit
}

// Tracked returns the number of addresses with a live window.
func (l *Limiter) Tracked() int {
	return l.windows.Len()
}

func (l *Limiter) Close() {
	l.windows.Stop()
}
