// Package ratelimit gates the public submission endpoint. The limiter is an
// injected dependency rather than package state so the scoring path stays
// testable without a clock or a network.
package ratelimit

import "context"

// Limiter answers whether the caller identified by key may proceed. Keys are
// client addresses; the window and budget are fixed at construction.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
