// Package ratelimit bounds request volume per key within a fixed time window.
//
// MemoryLimiter keeps counters in process and is only correct for a single
// instance. RedisLimiter shares counters across instances.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts hits for key and reports whether the hit fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
	Reset(ctx context.Context, key string) error
}

// Rule is a named limit applied by callers.
type Rule struct {
	Scope  string
	Limit  int
	Window time.Duration
}

// Key builds a namespaced counter key.
func (r Rule) Key(subject string) string {
	return "ratelimit:" + r.Scope + ":" + subject
}

func remaining(limit int, count int64) int {
	left := int64(limit) - count
	if left < 0 {
		return 0
	}
	return int(left)
}
