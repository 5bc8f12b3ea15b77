package summary

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/observability/metrics"
	"genai-summarizer/internal/observability/tracing"
	"genai-summarizer/internal/utils/text"
)

// SummarizeBatch summarizes each item independently.
//
// A batch larger than Limits.MaxBatchSize is rejected before any item runs.
// Otherwise results line up with items by index; an item that fails carries
// its error inline and does not affect its siblings, even when it panics.
func (s *Service) SummarizeBatch(ctx context.Context, items []BatchItem, tier entity.LengthTier, ownerID string) (results []BatchResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "summary.SummarizeBatch")
	span.SetAttributes(attribute.Int("summary.batch_size", len(items)))
	defer func() { tracing.EndSpan(span, err) }()

	if len(items) > s.Limits.MaxBatchSize {
		return nil, entity.ValidationError(fmt.Sprintf("Maximum %d items per batch", s.Limits.MaxBatchSize))
	}
	if tier, err = resolveTier(tier); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, entity.ValidationError("owner id is required")
	}

	slog.InfoContext(ctx, "processing batch",
		slog.Int("items", len(items)),
		slog.String("owner_id", ownerID))

	results = make([]BatchResult, len(items))
	var eg errgroup.Group
	eg.SetLimit(max(s.Limits.BatchConcurrency, 1))
	for i, item := range items {
		eg.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					slog.ErrorContext(ctx, "batch item panicked",
						slog.Int("index", i),
						slog.Any("panic", p),
						slog.String("stack", string(debug.Stack())))
					err := entity.NewError(entity.KindInternal, "An internal error occurred", fmt.Errorf("panic: %v", p))
					metrics.RecordBatchItem(err)
					results[i] = BatchResult{Err: err}
				}
			}()
			rec, err := s.summarizeItem(ctx, item, tier, ownerID)
			if err != nil {
				slog.WarnContext(ctx, "batch item failed",
					slog.Int("index", i),
					slog.Any("error", err))
			}
			metrics.RecordBatchItem(err)
			results[i] = BatchResult{Record: rec, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (s *Service) summarizeItem(ctx context.Context, item BatchItem, tier entity.LengthTier, ownerID string) (*entity.SummaryRecord, error) {
	if item == nil {
		return nil, entity.ValidationError("Batch item is empty")
	}
	body := item.batchText()
	if text.IsBlank(body) {
		return nil, entity.ValidationError("Text content cannot be empty")
	}
	summaryText, err := s.Summarizer.Summarize(ctx, body, tier)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, body, summaryText, tier, ownerID, entity.BatchProvenance())
}
