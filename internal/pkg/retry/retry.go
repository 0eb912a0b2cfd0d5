package retry

import (
	"context"
	"errors"
	"time"
)

// ErrRetry signals that the wrapped operation should be attempted again.
var ErrRetry = errors.New("retry")

// Backoff blocks until the next attempt may start. It returns ctx.Err()
// when the context is canceled before the wait elapses.
type Backoff func(ctx context.Context) error

// StaticBackoff returns a Backoff that waits for a fixed interval.
func StaticBackoff(interval time.Duration) Backoff {
	return CappedExponentialBackoff(interval, 1, interval)
}

// CappedExponentialBackoff returns a Backoff whose wait grows by factor r
// on each call, never exceeding maxInterval.
func CappedExponentialBackoff(initialInterval time.Duration, r float64, maxInterval time.Duration) Backoff {
	interval := initialInterval
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer func() {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			next := time.Duration(float64(interval) * r)
			if next > maxInterval {
				next = maxInterval
			}
			interval = next
			return nil
		}
	}
}

// Blocking calls f until it returns nil or a non-retry error. The first
// attempt runs immediately; subsequent attempts wait on the backoff.
func Blocking[T any](ctx context.Context, b Backoff, f func() (T, error)) (T, error) {
	var last T
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if err := b(ctx); err != nil {
				return last, err
			}
		}

		var err error
		last, err = f()
		if err == nil {
			return last, nil
		}
		if errors.Is(err, ErrRetry) {
			continue
		}
		return last, err
	}
}
