package summarizer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"genai-summarizer/internal/observability/tracing"
	"genai-summarizer/internal/resilience/circuitbreaker"
	"genai-summarizer/internal/resilience/retry"
)

// guard wraps a single provider call with the circuit breaker, retry,
// a per-call timeout, metrics and a span.
type guard struct {
	provider       string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	timeout        time.Duration
	metrics        MetricsRecorder
}

func newGuard(provider string, maxAttempts int, timeout time.Duration) guard {
	return guard{
		provider:       provider,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SummarizerAPIConfig(provider)),
		retryConfig:    retry.SummarizerConfig(maxAttempts),
		timeout:        timeout,
		metrics:        NewPrometheusMetrics(),
	}
}

// Name implements Backend.
func (g guard) Name() string { return g.provider }

func (g guard) run(ctx context.Context, call func(ctx context.Context) (string, error)) (out string, err error) {
	ctx, span := tracing.StartSpan(ctx, "summarizer.Complete")
	span.SetAttributes(attribute.String("summarizer.provider", g.provider))
	defer func() { tracing.EndSpan(span, err) }()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err = retry.Do(ctx, g.retryConfig, func() (string, error) {
		return circuitbreaker.Run(g.circuitBreaker, func() (string, error) {
			return call(ctx)
		})
	})
	g.metrics.RecordCall(g.provider, time.Since(start), err)
	return out, err
}
