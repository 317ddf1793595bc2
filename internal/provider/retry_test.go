package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, InitialInterval: time.Millisecond}
}

func TestRetryPolicy_SucceedsAfterRateLimits(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		if calls <= 3 {
			return fmt.Errorf("%w: try later", ErrRateLimited)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	// 3 rate-limited attempts + 1 success = exactly 3 backoff waits.
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}
}

func TestRetryPolicy_ExhaustsBudget(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return ErrRateLimited
	})
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("terminal error must still match ErrRateLimited, got %v", err)
	}
	if calls != 4 { // first attempt + MaxRetries
		t.Fatalf("expected 4 attempts, got %d", calls)
	}
}

func TestRetryPolicy_OtherErrorsAreTerminal(t *testing.T) {
	calls := 0
	boom := &StatusError{Status: 500, Body: "boom"}
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return boom
	})
	var se *StatusError
	if !errors.As(err, &se) || se.Status != 500 {
		t.Fatalf("expected StatusError back, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("non-rate-limit errors must not retry, calls=%d", calls)
	}
}

func TestRetryPolicy_DeterministicBackoffSchedule(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, InitialInterval: 10 * time.Millisecond}
	calls := 0
	start := time.Now()
	err := p.Do(context.Background(), func() error {
		calls++
		if calls <= 3 {
			return ErrRateLimited
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Waits are 10ms + 20ms + 40ms with no jitter.
	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Fatalf("backoff waits too short: %v", elapsed)
	}
}

func TestRetryPolicy_ContextCancelStopsWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	err := RetryPolicy{MaxRetries: 3, InitialInterval: time.Minute}.Do(ctx, func() error {
		calls++
		return ErrRateLimited
	})
	if err == nil {
		t.Fatalf("expected error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt before the long wait, got %d", calls)
	}
}

func TestStatusError_Message(t *testing.T) {
	e := &StatusError{Status: 502, Body: "bad gateway"}
	if got := e.Error(); got != "upstream returned 502: bad gateway" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate([]byte("short"), 10); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate([]byte("0123456789abc"), 10); got != "0123456789..." {
		t.Fatalf("unexpected: %q", got)
	}
}
