package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

// Func is an operation that can be retried
type Func func() error

// Config holds the retry configuration
type Config struct {
	MaxAttempts int
	Backoff     BackoffStrategy
	Logger      logger.Logger
}

// Do runs fn up to MaxAttempts times, backing off between attempts.
// It stops early when the context is cancelled.
func Do(ctx context.Context, fn Func, cfg *Config) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		default:
		}

		err := fn()

		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		backoff := cfg.Backoff.NextBackoff(attempt)
		cfg.Logger.Warn("Retrying after error",
			"error", err,
			"attempt", attempt,
			"maxAttempts", cfg.MaxAttempts,
			"backoff", backoff)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled during backoff: %w", ctx.Err())
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", cfg.MaxAttempts, lastErr)
}
