// Package summarizer turns normalized text into length-tiered summaries
// using an external language model.
//
// Engine owns the request contract: prompt construction, the empty input
// check and failure classification. Backends only move a Prompt to a
// provider and back. Engine is the only producer of SummarizationError.
package summarizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/utils/text"
)

// Backend sends a prompt to a language model and returns the generated text.
type Backend interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	// Name identifies the provider in logs and metrics.
	Name() string
}

// errEmptyResponse is returned when a provider answers with no text.
var errEmptyResponse = errors.New("language model returned an empty response")

// Engine implements summarize(text, tier) on top of a Backend.
type Engine struct {
	backend       Backend
	targets       Targets
	metrics       MetricsRecorder
	notConfigured string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetrics replaces the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithNotConfiguredMessage sets the message returned when no backend is set.
func WithNotConfiguredMessage(msg string) Option {
	return func(e *Engine) { e.notConfigured = msg }
}

// NewEngine returns an Engine. A nil backend yields an engine that fails
// every call with a "not configured" SummarizationError.
func NewEngine(backend Backend, targets Targets, opts ...Option) *Engine {
	if targets == nil {
		targets = DefaultTargets()
	}
	e := &Engine{
		backend:       backend,
		targets:       targets,
		metrics:       noopMetrics{},
		notConfigured: notConfiguredMessage(""),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configured reports whether a backend is available.
func (e *Engine) Configured() bool { return e.backend != nil }

// Provider returns the backend name, or "none".
func (e *Engine) Provider() string {
	if e.backend == nil {
		return "none"
	}
	return e.backend.Name()
}

// Targets returns the tier word counts used in prompts.
func (e *Engine) Targets() Targets { return e.targets }

// Summarize generates a summary of text for tier.
func (e *Engine) Summarize(ctx context.Context, input string, tier entity.LengthTier) (string, error) {
	if e.backend == nil {
		return "", entity.SummarizationError(e.notConfigured, nil)
	}
	if text.IsBlank(input) {
		return "", entity.SummarizationError("Cannot summarize empty text", nil)
	}
	if !tier.Valid() {
		tier = entity.DefaultTier
	}

	prompt := BuildPrompt(input, tier, e.targets)
	slog.InfoContext(ctx, "generating summary",
		slog.String("provider", e.backend.Name()),
		slog.String("tier", string(tier)),
		slog.Int("input_length", text.CountRunes(input)))

	start := time.Now()
	out, err := e.backend.Complete(ctx, prompt)
	if err == nil {
		out = strings.TrimSpace(out)
		if out == "" {
			err = errEmptyResponse
		}
	}
	if err != nil {
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("provider", e.backend.Name()),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return "", entity.SummarizationError("Failed to generate summary", err)
	}

	words := len(strings.Fields(out))
	target := e.targets.WordCount(tier)
	e.metrics.RecordSummary(tier, words, target)
	slog.InfoContext(ctx, "summary generated",
		slog.String("provider", e.backend.Name()),
		slog.Int("words", words),
		slog.Int("target_words", target),
		slog.Duration("duration", time.Since(start)))
	return out, nil
}

// Close releases backend resources when the backend holds any.
func (e *Engine) Close() error {
	if c, ok := e.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
