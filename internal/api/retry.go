package api

import (
	"context"
	"log/slog"
	"time"

	"sadaqah_go/internal/fault"
	"sadaqah_go/internal/infra"
)

// RetryPolicy re-runs a request that failed with a timeout. No other
// category is retried. The wait before attempt n is BaseDelay*n.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Sleep waits for d or until ctx is done. Nil means a real timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy is 3 attempts with a 1s base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: infra.RetryAttempts,
		BaseDelay:   infra.RetryBaseDelay,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn until it succeeds, fails with a non-timeout error, or the
// attempts are used up. The last error is returned unchanged.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := infra.LinearBackoff(p.BaseDelay, attempt)
			slog.Info("Retrying request",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))
			if sleep(ctx, delay) != nil {
				return err
			}
		}

		err = fn(ctx)
		if err == nil || fault.CategoryOf(err) != fault.CategoryTimeout {
			return err
		}
		// the caller gave up, not the server
		if ctx.Err() != nil {
			return err
		}
		slog.Warn("Request attempt timed out",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
	}
	return err
}
