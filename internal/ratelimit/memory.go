package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-key token bucket. Used when redis is not
// configured; counts are then per process, which is acceptable for a single
// instance deployment.
type MemoryLimiter struct {
	mu          sync.Mutex
	entries     map[string]*memoryEntry
	maxRequests int
	window      time.Duration
	done        chan struct{}
	stopOnce    sync.Once
}

func NewMemoryLimiter(maxRequests int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries:     make(map[string]*memoryEntry),
		maxRequests: maxRequests,
		window:      window,
		done:        make(chan struct{}),
	}
	go l.evictLoop()
	return l
}

// Stop terminates the eviction goroutine. Safe to call more than once.
func (l *MemoryLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &memoryEntry{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.maxRequests)), l.maxRequests),
		}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()

	return e.limiter.Allow(), nil
}

func (l *MemoryLimiter) evictLoop() {
	expiry := l.window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			for key, e := range l.entries {
				if time.Since(e.lastSeen) > expiry {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
