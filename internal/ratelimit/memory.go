package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryStore keeps a token bucket per key in process memory. Limits are
// per instance, so it is only suitable for single instance deployments.
type MemoryStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{limiters: make(map[string]*rate.Limiter)}
}

// Name identifies the store in metrics
func (s *MemoryStore) Name() string { return "memory" }

// Allow takes one token from the bucket for key
func (s *MemoryStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	l := s.limiter(key, limit, window)
	if !l.Allow() {
		return Result{
			Allowed:    false,
			RetryAfter: time.Duration(float64(time.Second) / float64(l.Limit())),
		}, nil
	}
	return Result{Allowed: true, Remaining: int(l.Tokens())}, nil
}

func (s *MemoryStore) limiter(key string, limit int, window time.Duration) *rate.Limiter {
	// limit and window are part of the key so routes with different
	// budgets never share a bucket
	k := fmt.Sprintf("%s|%d|%s", key, limit, window)

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[k]
	if !ok {
		l = rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit)
		s.limiters[k] = l
	}
	return l
}

// Cleanup drops buckets that are full again
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, l := range s.limiters {
		if l.Tokens() >= float64(l.Burst()) {
			delete(s.limiters, key)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is done
func (s *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-ctx.Done():
			return
		}
	}
}
