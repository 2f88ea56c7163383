package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is set when the request was rejected
	RetryAfter time.Duration
}

// Store counts requests per key. Implementations must be safe for
// concurrent use.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Name() string
}
