// Package retry runs an operation again after transient failures, with
// exponential backoff between tries.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Config controls how Do retries a failing operation.
type Config struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// BaseDelay is the wait before the second try. It doubles after every
	// failed try, up to MaxDelay.
	BaseDelay time.Duration
	// MaxDelay caps the doubling. Zero means no cap.
	MaxDelay time.Duration
	// Jitter adds up to this much random extra wait to every delay.
	Jitter time.Duration
}

// DefaultConfig tries three times starting from a 200ms delay.
func DefaultConfig() Config {
	return Config{
		Attempts:  3,
		BaseDelay: 200 * time.Millisecond,
		MaxDelay:  2 * time.Second,
		Jitter:    100 * time.Millisecond,
	}
}

// Do runs fn until it succeeds or the configured tries are used up.
// Between tries it sleeps with exponential backoff; a cancelled ctx cuts
// the sleep short and returns ctx.Err(). Fewer than one attempt is treated
// as one.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := cfg.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		wait := delay
		if cfg.Jitter > 0 {
			wait += time.Duration(rand.Int63n(int64(cfg.Jitter)))
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}
