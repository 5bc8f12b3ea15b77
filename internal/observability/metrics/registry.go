package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Business metrics track the summarization pipeline
var (
	// SummariesTotal counts pipeline runs by source, tier and outcome code
	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_total",
			Help: "Total number of summarize requests by source, tier and status",
		},
		[]string{"source", "tier", "status"},
	)

	// SummarizeDuration measures end to end pipeline duration
	SummarizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarize_duration_seconds",
			Help:    "Time taken to extract, summarize and store a document",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"source"},
	)

	// ExtractionFailuresTotal counts extraction failures per format
	ExtractionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total number of text extraction failures by format and error code",
		},
		[]string{"format", "code"},
	)

	// ExtractedTextSize measures normalized text size in runes
	ExtractedTextSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extracted_text_runes",
			Help:    "Size of normalized extracted text in characters",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
		[]string{"format"},
	)

	// StoreRecords tracks the number of records held in memory
	StoreRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "summary_store_records",
			Help: "Number of summary records currently stored",
		},
	)

	// BatchItemsTotal counts batch items by outcome
	BatchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_items_total",
			Help: "Total number of processed batch items by status",
		},
		[]string{"status"}, // status: success, failure
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
