package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count   int64
	resetAt time.Time
}

// MemoryLimiter is a fixed-window limiter held in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

func NewMemoryLimiter() *MemoryLimiter {
	l := &MemoryLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[key]
	if b == nil || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		l.buckets[key] = b
	}
	b.count++

	if b.count <= int64(limit) {
		return Result{Allowed: true, Remaining: remaining(limit, b.count)}, nil
	}
	return Result{Allowed: false, RetryAfter: b.resetAt.Sub(now)}, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *MemoryLimiter) cleanup() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *MemoryLimiter) Stop() {
	l.once.Do(func() { close(l.stopCh) })
}
