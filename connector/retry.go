package connector

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// retryConnect calls connectFn until it succeeds, the attempts run out or
// ctx is done. The delay grows by cfg.Backoff, capped at cfg.MaxDelay.
func retryConnect(ctx context.Context, cfg *RetryConfig, logger *slog.Logger, connectFn func(context.Context) error) error {
	var err error
	delay := cfg.BaseDelay

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if err = connectFn(ctx); err == nil {
			return nil
		}
		if attempt == cfg.MaxRetries {
			break
		}

		logger.WarnContext(ctx, "connection attempt failed",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", delay),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * cfg.Backoff)
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}
	return fmt.Errorf("failed to connect after %d attempts: %w", cfg.MaxRetries, err)
}
