package summary

import (
	"net/http"

	"genai-summarizer/internal/handler/http/respond"
	sumUC "genai-summarizer/internal/usecase/summary"
)

// Version is reported by the API health endpoint.
const Version = "1.0.0"

// APIHealthResponse is the body of GET /api/health.
type APIHealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Version string `json:"version" example:"1.0.0"`
}

// APIHealth APIヘルスチェック
// @Summary      APIヘルスチェック
// @Tags         health
// @Produce      json
// @Success      200 {object} APIHealthResponse
// @Router       /api/health [get]
func APIHealth(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, APIHealthResponse{Status: "healthy", Version: Version})
}

// Register registers all summary-related HTTP handlers with the given mux.
// Every route except /api/health expects auth.OwnerResolver upstream.
func Register(mux *http.ServeMux, svc *sumUC.Service) {
	mux.HandleFunc("GET    /api/health", APIHealth)

	mux.Handle("POST   /api/summarize", TextHandler{svc})
	mux.Handle("POST   /api/summarize/file", FileHandler{svc})
	mux.Handle("POST   /api/summarize/url", URLHandler{svc})
	mux.Handle("POST   /api/batch", BatchHandler{svc})

	mux.Handle("GET    /api/history", HistoryHandler{svc})
	mux.Handle("GET    /api/summary/{id}", GetHandler{svc})
	mux.Handle("DELETE /api/summary/{id}", DeleteHandler{svc})
}
