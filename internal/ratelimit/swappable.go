package ratelimit

import (
	"context"
	"sync/atomic"
)

// Swappable lets the config watcher replace the limiter at runtime when the
// rate-limit section changes, without re-wiring the middleware chain.
type Swappable struct {
	inner atomic.Value // Limiter
}

func NewSwappable(l Limiter) *Swappable {
	s := &Swappable{}
	s.inner.Store(l)
	return s
}

func (s *Swappable) Allow(ctx context.Context, key string) (bool, error) {
	return s.inner.Load().(Limiter).Allow(ctx, key)
}

// Swap installs the new limiter and stops the replaced one when it carries
// background work, so repeated config reloads do not leak goroutines.
func (s *Swappable) Swap(l Limiter) {
	old := s.inner.Load().(Limiter)
	s.inner.Store(l)
	if old == l {
		return
	}
	if stopper, ok := old.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}
