// Package extractor converts uploaded documents and web pages into
// normalized plain text.
//
// Supported formats are plain text, PDF, DOCX and URL. Every failure is an
// *entity.Error: FILE_FORMAT_ERROR for unknown formats, URL_FETCH_ERROR when
// a page cannot be downloaded, and EXTRACTION_ERROR when content cannot be
// parsed or yields no text. Parser diagnostics stay in the wrapped cause and
// never reach the message.
package extractor

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/observability/metrics"
	"genai-summarizer/internal/observability/tracing"
	"genai-summarizer/internal/utils/text"
)

// Extractor dispatches on the source format.
//
// Thread safety: Extractor is safe for concurrent use.
type Extractor struct {
	fetcher *Fetcher
	mode    string
}

// New creates an Extractor. fetcher may be nil, in which case URL sources fail
// with a URL fetch error. mode selects HTML extraction (ModeText or ModeReadability).
func New(fetcher *Fetcher, mode string) *Extractor {
	if mode != ModeReadability {
		mode = ModeText
	}
	return &Extractor{fetcher: fetcher, mode: mode}
}

// Extract converts content to normalized text. For FormatURL, content holds
// the URL to fetch.
//
// The text branch never fails. The url branch fails with an extraction error
// when the fetched page contains no text. Other branches may return a blank
// string on success; callers decide whether that is usable.
func (e *Extractor) Extract(ctx context.Context, format entity.Format, content []byte) (out string, err error) {
	ctx, span := tracing.StartSpan(ctx, "extractor.Extract")
	span.SetAttributes(attribute.String("extractor.format", string(format)))
	defer func() {
		metrics.RecordExtraction(string(format), text.CountRunes(out), err)
		span.SetAttributes(attribute.Int("extractor.text_bytes", len(out)))
		tracing.EndSpan(span, err)
	}()

	switch format {
	case entity.FormatText:
		return decodeText(content), nil
	case entity.FormatPDF:
		s, err := pdfText(content)
		if err != nil {
			return "", e.parseFailure(ctx, format, "Could not read PDF document", err)
		}
		return s, nil
	case entity.FormatDOCX:
		s, err := docxText(content)
		if err != nil {
			return "", e.parseFailure(ctx, format, "Could not read DOCX document", err)
		}
		return s, nil
	case entity.FormatURL:
		return e.ExtractURL(ctx, string(content))
	default:
		return "", entity.FileFormatError(string(format))
	}
}

// ExtractURL fetches rawURL and returns the visible text of the page.
func (e *Extractor) ExtractURL(ctx context.Context, rawURL string) (string, error) {
	if e.fetcher == nil {
		return "", entity.URLFetchError("URL fetching is not enabled", nil)
	}

	page, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "url fetch failed",
			slog.String("url", rawURL),
			slog.Any("error", err))
		return "", err
	}

	s, err := pageText(page, e.mode)
	if err != nil {
		return "", e.parseFailure(ctx, entity.FormatURL, "Could not parse fetched page", err)
	}
	if text.IsBlank(s) {
		return "", entity.ExtractionError("Could not extract text from URL", nil)
	}
	return s, nil
}

func (e *Extractor) parseFailure(ctx context.Context, format entity.Format, msg string, cause error) error {
	slog.WarnContext(ctx, "text extraction failed",
		slog.String("format", string(format)),
		slog.Any("error", cause))
	return entity.ExtractionError(msg, cause)
}
