package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/respond"
)

// Timeout bounds the time a handler may take. When the deadline passes
// first the client gets 504 with the INTERNAL_ERROR envelope and the
// handler's context is canceled, so an in-flight summarization is
// abandoned and nothing is stored for it.
//
// A panic in the handler goroutine is raised again on the serving
// goroutine, where Recover answers it.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}
			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
						return
					}
					close(done)
				}()
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
			case <-ctx.Done():
				if gw.expire() {
					respond.Message(w, http.StatusGatewayTimeout, "Request timeout", entity.KindInternal)
				}
			}
		})
	}
}

// guardedWriter lets exactly one side write the response: the handler,
// or the timeout once the handler has written nothing.
type guardedWriter struct {
	http.ResponseWriter

	mu      sync.Mutex
	started bool
	expired bool
}

// expire stops further handler writes and reports whether the response
// is still untouched.
func (g *guardedWriter) expire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.expired = true
	return !g.started
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.expired || g.started {
		return
	}
	g.started = true
	g.ResponseWriter.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !g.started {
		g.started = true
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(b)
}
