package infra

import (
	"time"
)

// LinearBackoff returns the delay to wait before the given attempt.
// Attempt numbers start at 1; the first attempt is never delayed and attempt n
// waits base*n, so with a 1s base the waits are 0, 2s, 3s.
func LinearBackoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 1 || base <= 0 {
		return 0
	}
	return base * time.Duration(attempt)
}
