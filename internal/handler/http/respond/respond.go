// Package respond provides utilities for sending HTTP responses in JSON format.
// Errors are written as {"error":{"message":...,"code":...}} with a status
// derived from the error kind, and internal details are never sent.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"genai-summarizer/internal/domain/entity"
)

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the caller-facing message and stable code.
type ErrorDetail struct {
	Message string `json:"message" example:"Text content cannot be empty"`
	Code    string `json:"code" example:"VALIDATION_ERROR"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind entity.ErrorKind) int {
	switch kind {
	case entity.KindValidation, entity.KindFileFormat, entity.KindFileSize:
		return http.StatusBadRequest
	case entity.KindAuthentication:
		return http.StatusUnauthorized
	case entity.KindForbidden:
		return http.StatusForbidden
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindExtraction, entity.KindURLFetch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a classified error response. Unclassified errors
// become INTERNAL_ERROR with a generic message; their text is only logged.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	kind := entity.KindOf(err)
	code := StatusFor(kind)

	// 5xx は原因をログに残す（機密情報はマスク）
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("code", kind.Code()),
			slog.Int("status", code),
			slog.String("error", SanitizeError(err)))
	}

	JSON(w, code, ErrorBody{Error: ErrorDetail{
		Message: entity.PublicMessage(err),
		Code:    kind.Code(),
	}})
}

// Message writes an error response with an explicit status, message and code.
// It is used for transport-level failures that never reach the pipeline.
func Message(w http.ResponseWriter, code int, message string, kind entity.ErrorKind) {
	JSON(w, code, ErrorBody{Error: ErrorDetail{Message: message, Code: kind.Code()}})
}
