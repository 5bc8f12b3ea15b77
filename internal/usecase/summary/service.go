// Package summary sequences extraction, summarization and storage for
// every summarize request, and exposes ownership-checked history access.
package summary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/observability/metrics"
	"genai-summarizer/internal/observability/tracing"
	"genai-summarizer/internal/repository"
	"genai-summarizer/internal/utils/text"
)

// Extractor turns raw documents into normalized text.
type Extractor interface {
	Extract(ctx context.Context, format entity.Format, content []byte) (string, error)
	ExtractURL(ctx context.Context, rawURL string) (string, error)
}

// Summarizer produces a summary of text for a length tier.
type Summarizer interface {
	Summarize(ctx context.Context, text string, tier entity.LengthTier) (string, error)
}

// Limits bounds the work a single request may cause.
type Limits struct {
	MaxFileSize      int64
	MaxBatchSize     int
	BatchConcurrency int
	// ExcerptLength is the number of characters of extracted text kept on
	// file and URL records.
	ExcerptLength int
}

// LimitsFromConfig converts configured limits.
func LimitsFromConfig(c config.LimitsConfig) Limits {
	return Limits{
		MaxFileSize:      c.MaxFileSize,
		MaxBatchSize:     c.MaxBatchSize,
		BatchConcurrency: c.BatchConcurrency,
		ExcerptLength:    c.ExcerptLength,
	}
}

// DefaultLimits returns the built-in limits.
func DefaultLimits() Limits {
	return LimitsFromConfig(config.Default().Limits)
}

// Service is the summarization pipeline.
// NewID and Now may be nil, in which case random UUIDs and time.Now are used.
type Service struct {
	Extractor  Extractor
	Summarizer Summarizer
	Repo       repository.SummaryRepository
	Limits     Limits
	NewID      func() string
	Now        func() time.Time
}

// Summarize runs one document through extract, summarize and persist.
// Either a stored record is returned or nothing was stored.
func (s *Service) Summarize(ctx context.Context, in Input, tier entity.LengthTier, ownerID string) (rec *entity.SummaryRecord, err error) {
	if in == nil {
		return nil, entity.ValidationError("No input provided")
	}
	source := in.source()
	ctx, span := tracing.StartSpan(ctx, "summary.Summarize")
	span.SetAttributes(
		attribute.String("summary.source", string(source)),
		attribute.String("summary.tier", string(tier)),
	)
	start := time.Now()
	defer func() {
		metrics.RecordSummary(string(source), string(tier), err, time.Since(start))
		tracing.EndSpan(span, err)
	}()

	if tier, err = resolveTier(tier); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, entity.ValidationError("owner id is required")
	}

	body, prov, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	summaryText, err := s.Summarizer.Summarize(ctx, body, tier)
	if err != nil {
		return nil, err
	}

	stored := body
	if source != entity.SourceText {
		stored = text.Excerpt(body, s.Limits.ExcerptLength)
	}
	rec, err = s.persist(ctx, stored, summaryText, tier, ownerID, prov)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "summary created",
		slog.String("id", rec.ID),
		slog.String("owner_id", ownerID),
		slog.String("source", string(source)),
		slog.String("tier", string(tier)))
	return rec, nil
}

// prepare validates the input and returns its normalized text.
func (s *Service) prepare(ctx context.Context, in Input) (string, entity.Provenance, error) {
	switch v := in.(type) {
	case TextInput:
		if text.IsBlank(v.Text) {
			return "", entity.Provenance{}, entity.ValidationError("Text content cannot be empty")
		}
		return v.Text, entity.TextProvenance(), nil

	case FileInput:
		format, err := entity.FormatFromFilename(v.Filename)
		if err != nil {
			return "", entity.Provenance{}, err
		}
		content, err := s.readLimited(v.Content)
		if err != nil {
			return "", entity.Provenance{}, err
		}
		out, err := s.Extractor.Extract(ctx, format, content)
		if err != nil {
			return "", entity.Provenance{}, err
		}
		if text.IsBlank(out) {
			return "", entity.Provenance{}, entity.ExtractionError("Could not extract text from file", nil)
		}
		return out, entity.FileProvenance(v.Filename), nil

	case URLInput:
		if err := entity.ValidateURL(v.URL); err != nil {
			return "", entity.Provenance{}, err
		}
		out, err := s.Extractor.ExtractURL(ctx, v.URL)
		if err != nil {
			return "", entity.Provenance{}, err
		}
		if text.IsBlank(out) {
			return "", entity.Provenance{}, entity.ExtractionError("Could not extract text from URL", nil)
		}
		return out, entity.URLProvenance(v.URL), nil

	default:
		return "", entity.Provenance{}, fmt.Errorf("unsupported input type %T", in)
	}
}

// readLimited reads r, failing with FileSizeError as soon as the limit is passed.
func (s *Service) readLimited(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, entity.ValidationError("No file provided")
	}
	max := s.Limits.MaxFileSize
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n > max {
		return nil, entity.FileSizeError(max)
	}
	return buf.Bytes(), nil
}

// persist stores a new record unless ctx was cancelled while summarizing.
func (s *Service) persist(ctx context.Context, stored, summaryText string, tier entity.LengthTier, ownerID string, prov entity.Provenance) (*entity.SummaryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec := &entity.SummaryRecord{
		ID:         s.newID(),
		Text:       stored,
		Summary:    summaryText,
		Length:     tier,
		CreatedAt:  s.now(),
		OwnerID:    ownerID,
		Provenance: prov,
	}
	if err := s.Repo.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}
	return rec, nil
}

// History returns the owner's records in creation order.
func (s *Service) History(ctx context.Context, ownerID string) ([]*entity.SummaryRecord, error) {
	records, err := s.Repo.History(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return records, nil
}

// Get returns one record owned by ownerID.
func (s *Service) Get(ctx context.Context, id, ownerID string) (*entity.SummaryRecord, error) {
	return s.Repo.Get(ctx, id, ownerID)
}

// Delete removes one record owned by ownerID.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "summary deleted",
		slog.String("id", id),
		slog.String("owner_id", ownerID))
	return nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func resolveTier(tier entity.LengthTier) (entity.LengthTier, error) {
	if tier.Valid() {
		return tier, nil
	}
	return entity.ParseLengthTier(string(tier))
}
