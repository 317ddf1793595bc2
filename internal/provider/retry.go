package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how a detail fetch reacts to upstream rate limiting.
// The waits are deterministic (no jitter) and double each attempt:
// InitialInterval, 2x, 4x, ... up to MaxRetries additional attempts.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// InitialInterval is the first backoff wait.
	InitialInterval time.Duration
}

// DefaultRetryPolicy matches the documented 1s/2s/4s schedule.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, InitialInterval: time.Second}
}

// Do runs op, retrying only failures that match ErrRateLimited. Every
// other error is terminal and surfaced unmodified. When the budget runs
// out, the returned error matches both ErrRetriesExhausted and
// ErrRateLimited. The backoff waits are blocking; ctx cancellation
// interrupts them.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = p.InitialInterval << p.MaxRetries
	b.MaxElapsedTime = 0 // budget is attempt-count based

	err := backoff.Retry(func() error {
		err := op()
		if err == nil || errors.Is(err, ErrRateLimited) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx))

	if err != nil && errors.Is(err, ErrRateLimited) {
		return fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
	}
	return err
}
