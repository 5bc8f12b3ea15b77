// Package resilience groups the fault tolerance helpers used around the
// summarizer's external calls: the language model backends and URL fetches.
//
//   - circuitbreaker wraps github.com/sony/gobreaker
//   - retry implements bounded exponential backoff with jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SummarizerAPIConfig("azure"))
//	out, err := circuitbreaker.Run(cb, func() (string, error) {
//	    return callBackend(ctx)
//	})
//
//	err = retry.WithBackoff(ctx, retry.SummarizerConfig(3), func() error {
//	    return performOperation()
//	})
package resilience
