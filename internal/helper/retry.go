package helper

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type RetryableFunc func(ctx context.Context) (retry bool, err error)

// RetryWithBackoff runs operation until it succeeds, reports a non-retryable
// error, or maxRetries is exhausted. Delays double from baseDelay and are cut
// short when ctx is cancelled.
func RetryWithBackoff(ctx context.Context, name string, operation RetryableFunc, maxRetries int, baseDelay time.Duration) error {
	var err error
	delay := baseDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		var retry bool
		retry, err = operation(ctx)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		if attempt == maxRetries {
			break
		}

		slog.Warn("Operation failed, retrying", "operation", name, "attempt", attempt+1, "delay", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", name, ctx.Err())
		case <-timer.C:
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, maxRetries+1, err)
}
