// Package ratelimit provides a keyed rate limiter using token bucket algorithm.
// It supports both non-blocking (Allow) and blocking (Wait) operations.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = time.Minute
	maxIdle         = 10 * time.Minute
)

// entry pairs a limiter with its last access time.
type entry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // Unix nanos
}

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent rate limiter. Keys are client
// identifiers with unbounded cardinality, so idle entries are evicted in
// the background to keep the map from growing forever.
type KeyedRateLimiter struct {
	mu      sync.RWMutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	// Cleanup
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.cleanup()

	return krl
}

// Allow checks if a request for the given key should be allowed.
// Returns immediately without blocking. Use for inbound request protection.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Wait blocks until a request for the given key is allowed or context is canceled.
// Use for outbound requests where you want to respect rate limits.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.getLimiter(key).Wait(ctx)
}

// getLimiter returns the limiter for a key, creating one if needed.
func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now().UnixNano()

	// Fast path: read lock
	krl.mu.RLock()
	e, exists := krl.entries[key]
	krl.mu.RUnlock()

	if exists {
		e.lastSeen.Store(now)
		return e.limiter
	}

	// Slow path: write lock to create
	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	if e, exists = krl.entries[key]; exists {
		e.lastSeen.Store(now)
		return e.limiter
	}

	e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
	e.lastSeen.Store(now)
	krl.entries[key] = e
	return e.limiter
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

// cleanup evicts idle entries until Stop is called.
func (krl *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.evictIdle(time.Now().Add(-maxIdle))
		}
	}
}

// evictIdle removes entries not seen since the cutoff and reports how many
// were dropped. An evicted key starts over with a full burst on next use.
func (krl *KeyedRateLimiter) evictIdle(cutoff time.Time) int {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	evicted := 0
	cutoffNanos := cutoff.UnixNano()
	for key, e := range krl.entries {
		if e.lastSeen.Load() < cutoffNanos {
			delete(krl.entries, key)
			evicted++
		}
	}
	return evicted
}
