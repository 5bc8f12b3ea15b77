package metrics

import (
	"time"

	"genai-summarizer/internal/domain/entity"
)

// statusLabel turns a pipeline error into a low-cardinality label.
func statusLabel(err error) string {
	if err == nil {
		return "success"
	}
	return entity.KindOf(err).Code()
}

// RecordSummary records one pipeline run.
func RecordSummary(source, tier string, err error, duration time.Duration) {
	SummariesTotal.WithLabelValues(source, tier, statusLabel(err)).Inc()
	SummarizeDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordExtraction records the outcome of a text extraction.
// size is the length of the normalized text in runes and is ignored on failure.
func RecordExtraction(format string, size int, err error) {
	if err != nil {
		ExtractionFailuresTotal.WithLabelValues(format, statusLabel(err)).Inc()
		return
	}
	ExtractedTextSize.WithLabelValues(format).Observe(float64(size))
}

// RecordBatchItem records the outcome of one batch item.
func RecordBatchItem(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	BatchItemsTotal.WithLabelValues(status).Inc()
}

// SetStoreRecords updates the stored record gauge.
func SetStoreRecords(n int) {
	StoreRecords.Set(float64(n))
}
