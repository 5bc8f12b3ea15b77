package summary

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/auth"
)

// errNoOwner means the route was registered without OwnerResolver.
var errNoOwner = errors.New("request owner not resolved")

func owner(r *http.Request) (string, error) {
	id, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		return "", errNoOwner
	}
	return id, nil
}

// decodeJSON decodes the body into v, mapping an oversize body to FileSizeError.
func decodeJSON(r *http.Request, v any, maxBytes int64) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return entity.FileSizeError(maxBytes)
		}
		if errors.Is(err, io.EOF) {
			return entity.ValidationError("Request body is required")
		}
		return entity.ValidationError("Invalid JSON body")
	}
	return nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
