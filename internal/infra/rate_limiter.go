package infra

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces outgoing API requests with a token bucket.
// Safe for concurrent use.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing perSecond requests with the given burst.
func NewRateLimiter(burst int, perSecond float64) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// NewRateLimiterFromConfig uses the api.rate_limit section.
func NewRateLimiterFromConfig(cfg *Config) *RateLimiter {
	return NewRateLimiter(cfg.API.RateLimit.Burst, cfg.API.RateLimit.PerSecond)
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
