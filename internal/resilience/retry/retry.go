// Package retry retries transient failures of outbound calls with
// exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config holds the backoff policy.
type Config struct {
	// MaxAttempts is the total number of calls, including the first one.
	// Values below 1 are treated as 1 (a single call, no retry).
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration // zero means unbounded
	Multiplier   float64

	// JitterFraction of each delay is added at random (0.0 to 1.0).
	JitterFraction float64
}

// SummarizerConfig returns the policy used for language model calls.
// maxAttempts of 1 keeps the single-call behavior; larger values retry
// transient transport failures only.
func SummarizerConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:    maxAttempts,
		InitialDelay:   2 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// NoRetry performs exactly one call.
func NoRetry() Config {
	return Config{MaxAttempts: 1}
}

func (c Config) attempts() int {
	return max(c.MaxAttempts, 1)
}

// next returns the delay that follows d.
func (c Config) next(d time.Duration) time.Duration {
	d = time.Duration(float64(d) * c.Multiplier)
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return addJitter(d, c.JitterFraction)
}

// Do calls fn until it succeeds, fails with an error IsRetryable rejects,
// or the attempts run out.
//
// A non-retryable error, and the error of a single-attempt policy, are
// returned as fn produced them so their classification survives.
// Exhaustion wraps the last error.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	n := cfg.attempts()
	delay := cfg.InitialDelay

	var lastErr error
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, fmt.Errorf("retry aborted: %w", err)
			}
			return zero, err
		}

		out, err := fn()
		if err == nil {
			if attempt > 1 {
				slog.InfoContext(ctx, "operation succeeded after retry", slog.Int("attempt", attempt))
			}
			return out, nil
		}
		lastErr = err

		if n == 1 || !IsRetryable(err) {
			return zero, err
		}
		if attempt == n {
			return zero, fmt.Errorf("max retry attempts (%d) exceeded: %w", n, err)
		}

		slog.WarnContext(ctx, "operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", n),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		if err := sleep(ctx, delay); err != nil {
			return zero, fmt.Errorf("retry aborted: %w", err)
		}
		delay = cfg.next(delay)
	}
}

// WithBackoff is Do for functions without a result.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	_, err := Do(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRetryable reports whether err is a transient transport failure:
// a network timeout, a refused or reset connection, or a retryable
// HTTPError status. Context errors never are.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT), errors.Is(err, syscall.ENETUNREACH):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return IsRetryableStatus(httpErr.StatusCode)
	}
	return false
}

// IsRetryableStatus reports whether an HTTP status indicates a transient failure.
func IsRetryableStatus(code int) bool {
	return code >= 500 && code < 600 ||
		code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout
}

// HTTPError is a non-2xx answer from a provider or a fetched site.
// Err optionally holds the provider's own error value.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need cryptographic randomness.
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
