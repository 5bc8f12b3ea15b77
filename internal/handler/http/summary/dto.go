// Package summary provides HTTP handlers for the summarize, batch and
// history endpoints.
package summary

import (
	"time"

	"genai-summarizer/internal/domain/entity"
)

// DTO is the JSON form of a summary record.
type DTO struct {
	ID        string    `json:"id" example:"5f0c7a3e-6b8e-4b8e-9d43-3f1f6e1c2a10"`
	Text      string    `json:"text" example:"The quick brown fox jumps over the lazy dog."`
	Summary   string    `json:"summary" example:"A fox jumps over a dog."`
	Length    string    `json:"length" example:"short"`
	CreatedAt time.Time `json:"created_at" example:"2026-01-02T03:04:05Z"`
	UserID    string    `json:"user_id" example:"u1"`
	Filename  string    `json:"filename,omitempty" example:"report.pdf"`
	SourceURL string    `json:"source_url,omitempty" example:"https://example.com/article"`
}

func toDTO(r *entity.SummaryRecord) DTO {
	return DTO{
		ID:        r.ID,
		Text:      r.Text,
		Summary:   r.Summary,
		Length:    string(r.Length),
		CreatedAt: r.CreatedAt,
		UserID:    r.OwnerID,
		Filename:  r.Provenance.Filename,
		SourceURL: r.Provenance.URL,
	}
}

type summarizeRequest struct {
	Text          string `json:"text" example:"The quick brown fox jumps over the lazy dog."`
	SummaryLength string `json:"summary_length" example:"medium" enums:"short,medium,long"`
}

type urlRequest struct {
	URL           string `json:"url" example:"https://example.com/article"`
	SummaryLength string `json:"summary_length" example:"medium" enums:"short,medium,long"`
}

type batchItem struct {
	Text string `json:"text" example:"First document."`
}

type batchRequest struct {
	Items         []batchItem `json:"items"`
	SummaryLength string      `json:"summary_length" example:"medium" enums:"short,medium,long"`
}

// BatchEntry is either a record or an inline error.
type BatchEntry struct {
	*DTO
	Error string `json:"error,omitempty" example:"Text content cannot be empty"`
}

// BatchResponse is the result of a batch request.
type BatchResponse struct {
	Processed int          `json:"processed" example:"2"`
	Results   []BatchEntry `json:"results"`
}

// HistoryResponse lists the caller's summaries.
type HistoryResponse struct {
	Summaries []DTO `json:"summaries"`
	Total     int   `json:"total" example:"1"`
}

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"Summary deleted successfully"`
}
