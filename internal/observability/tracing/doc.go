// Package tracing provides OpenTelemetry tracing integration.
//
// Example usage:
//
//	shutdown := tracing.InitTracer()
//	defer shutdown(context.Background())
//
//	func process(ctx context.Context) error {
//	    ctx, span := tracing.StartSpan(ctx, "summary.Summarize")
//	    defer span.End()
//	    ...
//	}
package tracing
