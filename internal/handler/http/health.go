// Package http assembles the HTTP server: probes, the middleware chain,
// metrics and the route table shared by every handler package.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// SummarizerStatus reports whether a summarization backend is wired.
type SummarizerStatus interface {
	Configured() bool
	Provider() string
}

// RecordCounter reports the size of the record store.
type RecordCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler reports the state of the summarizer and record store.
// An unconfigured summarizer is degraded, not unhealthy: text endpoints
// still answer with SUMMARIZATION_ERROR.
type HealthHandler struct {
	Summarizer SummarizerStatus
	Store      RecordCounter
	Version    string
	Now        func() time.Time
}

// ServeHTTP 詳細ヘルスチェック
// @Summary      詳細ヘルスチェック
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"summarizer": h.checkSummarizer(),
		"store":      h.checkStore(ctx),
	}

	status, code := "healthy", http.StatusOK
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	writeHealth(w, code, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkSummarizer() CheckStatus {
	if h.Summarizer == nil {
		return CheckStatus{Status: "unhealthy", Message: "not wired"}
	}
	details := map[string]any{"provider": h.Summarizer.Provider()}
	if !h.Summarizer.Configured() {
		return CheckStatus{Status: "degraded", Message: "not configured", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkStore(ctx context.Context) CheckStatus {
	if h.Store == nil {
		return CheckStatus{Status: "unhealthy", Message: "not wired"}
	}
	n, err := h.Store.Count(ctx)
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: "count failed"}
	}
	return CheckStatus{Status: "healthy", Details: map[string]any{"records": n}}
}

func writeHealth(w http.ResponseWriter, code int, v HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// ReadyHandler handles readiness probe requests.
// The service is ready once its store answers.
type ReadyHandler struct {
	Store RecordCounter
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Store == nil {
		http.Error(w, "store not configured", http.StatusServiceUnavailable)
		return
	}
	if _, err := h.Store.Count(ctx); err != nil {
		http.Error(w, "store not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
