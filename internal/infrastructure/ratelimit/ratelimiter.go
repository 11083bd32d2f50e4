// Package ratelimit provides a redis-backed sliding window rate limiter
// for the public HTTP endpoints.
package ratelimit

import "context"

// Config bounds request rates per window. A zero limit disables that window.
type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Limiter answers whether a keyed caller may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string, cfg Config) (bool, error)
}
