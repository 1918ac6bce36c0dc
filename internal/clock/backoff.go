package clock

import "time"

// Backoff returns the exponential delay for a zero-based retry attempt, capped at limit.
// A non-positive base disables waiting.
func Backoff(base, limit time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base
	for i := 0; i < attempt; i++ {
		if limit > 0 && d >= limit/2 {
			return limit
		}
		d *= 2
	}
	if limit > 0 && d > limit {
		return limit
	}
	return d
}
