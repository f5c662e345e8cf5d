package search

import (
	"context"
	"errors"
	"time"

	"eve-routes/internal/routes"
)

// DefaultMaxAttempts caps one logical search at three network attempts.
const DefaultMaxAttempts = 3

// Backoff returns the delay before retrying the given zero-based attempt:
// 2^attempt seconds, no jitter.
func Backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// sleep waits for d or until ctx is cancelled. Swapped in tests to avoid
// real backoff delays.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Retry runs op up to maxAttempts times. Only rate-limit failures are
// retried; cancellation and every other error return immediately. A loop
// that exhausts its attempts surfaces the final error alone.
func Retry(ctx context.Context, maxAttempts int, op func(context.Context) (*routes.ResultSet, error)) (*routes.ResultSet, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 0; ; attempt++ {
		set, err := op(ctx)
		if err == nil {
			return set, nil
		}
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, err
		}
		if attempt+1 >= maxAttempts {
			return nil, err
		}
		if !routes.IsRateLimited(err) {
			return nil, err
		}
		if serr := sleep(ctx, Backoff(attempt)); serr != nil {
			return nil, serr
		}
	}
}
