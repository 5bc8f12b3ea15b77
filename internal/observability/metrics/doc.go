// Package metrics provides the Prometheus collectors for the summarizer service.
//
// All collectors are registered with the default registry and exposed via
// the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	rec, err := svc.Summarize(ctx, in, tier, owner)
//	metrics.RecordSummary("text", string(tier), err, time.Since(start))
package metrics
