package util

import (
	"context"
	"time"
)

// Sleep waits for d or until ctx is done. Tests swap it for a recorder.
var Sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryWithBackoff runs operation up to maxAttempts times, waiting baseDelay,
// 2*baseDelay, 4*baseDelay... between attempts. There is no wait after the
// final attempt. The last error is returned when every attempt fails.
func RetryWithBackoff(ctx context.Context, maxAttempts int, baseDelay time.Duration, operation func(attempt int) error) error {
	var err error
	for i := 0; i < maxAttempts; i++ {
		err = operation(i + 1)
		if err == nil {
			return nil
		}
		if i == maxAttempts-1 {
			break
		}

		// Exponential backoff: 200ms, 400ms, ... for a 200ms base
		delay := baseDelay * time.Duration(1<<i)
		if serr := Sleep(ctx, delay); serr != nil {
			return serr
		}
	}
	return err
}

// RetryWithBackoffResult is RetryWithBackoff for operations that return a value.
func RetryWithBackoffResult[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, operation func(attempt int) (T, error)) (T, error) {
	var result T
	err := RetryWithBackoff(ctx, maxAttempts, baseDelay, func(attempt int) error {
		var opErr error
		result, opErr = operation(attempt)
		return opErr
	})
	return result, err
}
