// Package ratelimit provides token bucket rate limiting for outbound
// judge-model calls.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Config configures rate limiting behavior.
type Config struct {
	// RequestsPerSecond is the number of requests allowed per second.
	RequestsPerSecond float64
	// BurstSize is the maximum number of requests allowed in a burst.
	BurstSize int
}

// DefaultConfig returns the default rate limit configuration.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5.0,
		BurstSize:         10,
	}
}

// Bucket wraps a token-bucket rate.Limiter behind the two operations the
// evaluator needs.
type Bucket struct {
	limiter *rate.Limiter
}

// NewBucket creates a new token bucket.
func NewBucket(config Config) *Bucket {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 5.0
	}
	if config.BurstSize <= 0 {
		config.BurstSize = int(config.RequestsPerSecond * 2)
	}

	return &Bucket{
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.BurstSize),
	}
}

// TryAcquire consumes a token if one is available.
func (b *Bucket) TryAcquire() bool {
	return b.limiter.Allow()
}

// WaitForSlot blocks until a token is available or the context is done.
func (b *Bucket) WaitForSlot(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}

// Tokens returns the current number of available tokens.
func (b *Bucket) Tokens() float64 {
	return b.limiter.Tokens()
}
