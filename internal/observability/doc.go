// Package observability groups structured logging, Prometheus metrics and
// OpenTelemetry tracing for the summarizer service.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors and recorders
//   - tracing: tracer access and HTTP middleware
package observability
