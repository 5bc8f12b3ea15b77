package summarizer

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"genai-summarizer/internal/domain/entity"
)

// MetricsRecorder records language model calls and summary sizes.
// Tests inject a fake; production uses PrometheusMetrics.
type MetricsRecorder interface {
	// RecordCall records one backend call and its outcome.
	RecordCall(provider string, duration time.Duration, err error)

	// RecordSummary records the word count of a returned summary and
	// whether it stayed within twice the tier target.
	RecordSummary(tier entity.LengthTier, words, target int)
}

// PrometheusMetrics implements MetricsRecorder with Prometheus collectors.
type PrometheusMetrics struct {
	calls      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	words      *prometheus.HistogramVec
	overTarget *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

// registerOrExisting registers c, returning the already registered collector
// of the same description when there is one.
func registerOrExisting[C prometheus.Collector](c C) C {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// NewPrometheusMetrics returns the process-wide recorder.
// It is a singleton so that repeated construction in tests does not panic
// on duplicate registration.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			calls: registerOrExisting(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "summarizer_requests_total",
				Help: "Total number of language model calls by provider and status",
			}, []string{"provider", "status"})),
			duration: registerOrExisting(prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "summarizer_request_duration_seconds",
				Help:    "Time taken by a language model call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"})),
			words: registerOrExisting(prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "summary_length_words",
				Help:    "Distribution of generated summary lengths in words",
				Buckets: []float64{25, 50, 100, 150, 200, 300, 450, 600},
			}, []string{"tier"})),
			overTarget: registerOrExisting(prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "summary_over_target_total",
				Help: "Summaries longer than twice their tier's target word count",
			}, []string{"tier"})),
		}
	})
	return prometheusMetricsInstance
}

// RecordCall implements MetricsRecorder.
func (p *PrometheusMetrics) RecordCall(provider string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	p.calls.WithLabelValues(provider, status).Inc()
	p.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordSummary implements MetricsRecorder.
func (p *PrometheusMetrics) RecordSummary(tier entity.LengthTier, words, target int) {
	p.words.WithLabelValues(string(tier)).Observe(float64(words))
	if target > 0 && words > 2*target {
		p.overTarget.WithLabelValues(string(tier)).Inc()
	}
}

type noopMetrics struct{}

func (noopMetrics) RecordCall(string, time.Duration, error) {}
func (noopMetrics) RecordSummary(entity.LengthTier, int, int) {}
