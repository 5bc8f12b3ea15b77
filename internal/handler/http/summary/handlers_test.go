package summary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/handler/http/auth"
	"genai-summarizer/internal/handler/http/respond"
	"genai-summarizer/internal/handler/http/summary"
	"genai-summarizer/internal/infra/adapter/persistence/memory"
	authservice "genai-summarizer/internal/service/auth"
	sumUC "genai-summarizer/internal/usecase/summary"
)

const secret = "0123456789abcdef0123456789abcdef"

type fakeExtractor struct{}

func (fakeExtractor) Extract(_ context.Context, format entity.Format, content []byte) (string, error) {
	if format == entity.FormatPDF && len(content) == 0 {
		return "", entity.ExtractionError("Failed to extract text from PDF", errors.New("empty pdf"))
	}
	return string(content), nil
}

func (fakeExtractor) ExtractURL(_ context.Context, rawURL string) (string, error) {
	if strings.Contains(rawURL, "unreachable") {
		return "", entity.URLFetchError("Failed to fetch URL", errors.New("dial tcp: refused"))
	}
	return "page body of " + rawURL, nil
}

type fakeSummarizer struct{ calls atomic.Int32 }

func (s *fakeSummarizer) Summarize(_ context.Context, text string, tier entity.LengthTier) (string, error) {
	s.calls.Add(1)
	if strings.Contains(text, "explode") {
		return "", entity.SummarizationError("Failed to generate summary", errors.New("upstream 500 api-key=sk-secret"))
	}
	return fmt.Sprintf("%s summary", tier), nil
}

type server struct {
	handler    http.Handler
	tokens     *authservice.TokenService
	summarizer *fakeSummarizer
}

func newServer(t *testing.T) *server {
	t.Helper()
	var seq atomic.Int32
	sum := &fakeSummarizer{}
	limits := sumUC.DefaultLimits()
	limits.MaxFileSize = 1024
	svc := &sumUC.Service{
		Extractor:  fakeExtractor{},
		Summarizer: sum,
		Repo:       memory.NewSummaryRepo(),
		Limits:     limits,
		NewID:      func() string { return fmt.Sprintf("id-%d", seq.Add(1)) },
		Now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	tokens := authservice.NewTokenService(secret, time.Hour)
	mux := http.NewServeMux()
	summary.Register(mux, svc)
	return &server{handler: auth.OwnerResolver(tokens)(mux), tokens: tokens, summarizer: sum}
}

func (s *server) do(t *testing.T, req *http.Request, user string) *httptest.ResponseRecorder {
	t.Helper()
	if user != "" {
		token, err := s.tokens.Issue(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, filename string, content []byte, tier string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	if tier != "" {
		require.NoError(t, mw.WriteField("summary_length", tier))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/summarize/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[respond.ErrorBody](t, rec)
	assert.Equal(t, code, body.Error.Code)
	if message != "" {
		assert.Equal(t, message, body.Error.Message)
	}
}

/* ───────── テキスト要約 ───────── */

func TestSummarizeText(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/summarize",
		map[string]string{"text": "hello world", "summary_length": "short"}), "u1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[summary.DTO](t, rec)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "hello world", got.Text)
	assert.Equal(t, "short summary", got.Summary)
	assert.Equal(t, "short", got.Length)
	assert.Equal(t, "u1", got.UserID)
	assert.Empty(t, got.Filename)
	assert.Empty(t, got.SourceURL)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestSummarizeText_DefaultsToMedium(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/summarize", map[string]string{"text": "hello"}), "u1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "medium", decode[summary.DTO](t, rec).Length)
}

func TestSummarizeText_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{name: "empty text", body: `{"text":"   "}`, status: 400, code: "VALIDATION_ERROR", message: "Text content cannot be empty"},
		{name: "bad tier", body: `{"text":"a","summary_length":"huge"}`, status: 400, code: "VALIDATION_ERROR"},
		{name: "malformed json", body: `{"text":`, status: 400, code: "VALIDATION_ERROR", message: "Invalid JSON body"},
		{name: "missing body", body: ``, status: 400, code: "VALIDATION_ERROR", message: "Request body is required"},
		{name: "summarizer failure", body: `{"text":"explode"}`, status: 500, code: "SUMMARIZATION_ERROR", message: "Failed to generate summary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			req := httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := s.do(t, req, "u1")

			assertError(t, rec, tt.status, tt.code, tt.message)
			assert.NotContains(t, rec.Body.String(), "sk-secret")
		})
	}
}

func TestSummarizeText_Guest(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/summarize", map[string]string{"text": "hello"}), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(decode[summary.DTO](t, rec).UserID, "guest_"))
}

func TestSummarizeText_InvalidToken(t *testing.T) {
	s := newServer(t)
	req := jsonRequest(http.MethodPost, "/api/summarize", map[string]string{"text": "hello"})
	req.Header.Set("Authorization", "Bearer forged")

	rec := s.do(t, req, "")

	assertError(t, rec, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "")
	assert.Equal(t, int32(0), s.summarizer.calls.Load())
}

/* ───────── ファイル要約 ───────── */

func TestSummarizeFile(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, multipartRequest(t, "notes.txt", []byte("file contents"), "long"), "u1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[summary.DTO](t, rec)
	assert.Equal(t, "notes.txt", got.Filename)
	assert.Equal(t, "file contents", got.Text)
	assert.Equal(t, "long", got.Length)
}

func TestSummarizeFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		status   int
		code     string
		message  string
	}{
		{name: "unsupported extension", filename: "image.png", content: []byte("x"), status: 400, code: "FILE_FORMAT_ERROR"},
		{name: "too large", filename: "big.txt", content: bytes.Repeat([]byte("a"), 1025), status: 400, code: "FILE_SIZE_ERROR"},
		{name: "no file", status: 400, code: "VALIDATION_ERROR", message: "No file provided"},
		{name: "extraction failure", filename: "broken.pdf", content: []byte{}, status: 422, code: "EXTRACTION_ERROR"},
		{name: "blank extraction", filename: "blank.txt", content: []byte("  \n "), status: 422, code: "EXTRACTION_ERROR", message: "Could not extract text from file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)

			rec := s.do(t, multipartRequest(t, tt.filename, tt.content, ""), "u1")

			assertError(t, rec, tt.status, tt.code, tt.message)
			assert.Equal(t, int32(0), s.summarizer.calls.Load())
		})
	}
}

func TestSummarizeFile_NotMultipart(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/summarize/file", map[string]string{"text": "x"}), "u1")

	assertError(t, rec, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
}

/* ───────── URL要約 ───────── */

func TestSummarizeURL(t *testing.T) {
	tests := []struct {
		name string
		req  func() *http.Request
	}{
		{
			name: "form",
			req: func() *http.Request {
				form := url.Values{"url": {"https://example.com/a"}, "summary_length": {"short"}}
				r := httptest.NewRequest(http.MethodPost, "/api/summarize/url", strings.NewReader(form.Encode()))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			},
		},
		{
			name: "json",
			req: func() *http.Request {
				return jsonRequest(http.MethodPost, "/api/summarize/url",
					map[string]string{"url": "https://example.com/a", "summary_length": "short"})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)

			rec := s.do(t, tt.req(), "u1")

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			got := decode[summary.DTO](t, rec)
			assert.Equal(t, "https://example.com/a", got.SourceURL)
			assert.Equal(t, "page body of https://example.com/a", got.Text)
			assert.Equal(t, "short", got.Length)
		})
	}
}

func TestSummarizeURL_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		status int
		code   string
	}{
		{name: "missing", url: "", status: 400, code: "VALIDATION_ERROR"},
		{name: "bad scheme", url: "ftp://example.com/file", status: 400, code: "VALIDATION_ERROR"},
		{name: "fetch failure", url: "https://unreachable.example.com", status: 422, code: "URL_FETCH_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)

			rec := s.do(t, jsonRequest(http.MethodPost, "/api/summarize/url", map[string]string{"url": tt.url}), "u1")

			assertError(t, rec, tt.status, tt.code, "")
		})
	}
}

/* ───────── バッチ要約 ───────── */

type batchItem struct {
	Text string `json:"text"`
}

func batchBody(texts ...string) map[string]any {
	items := make([]batchItem, len(texts))
	for i, t := range texts {
		items[i] = batchItem{Text: t}
	}
	return map[string]any{"items": items, "summary_length": "short"}
}

func TestBatch_PartialSuccess(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/batch", batchBody("", "valid text")), "u1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got struct {
		Processed int              `json:"processed"`
		Results   []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Processed)
	require.Len(t, got.Results, 2)
	assert.Equal(t, map[string]any{"error": "Text content cannot be empty"}, got.Results[0])
	assert.Equal(t, "valid text", got.Results[1]["text"])
	assert.Equal(t, "short summary", got.Results[1]["summary"])
	assert.NotContains(t, got.Results[1], "error")

	history := s.do(t, httptest.NewRequest(http.MethodGet, "/api/history", nil), "u1")
	assert.Equal(t, 1, decode[summary.HistoryResponse](t, history).Total)
}

func TestBatch_TooMany(t *testing.T) {
	s := newServer(t)
	texts := make([]string, 11)
	for i := range texts {
		texts[i] = "text"
	}

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/batch", batchBody(texts...)), "u1")

	assertError(t, rec, http.StatusBadRequest, "VALIDATION_ERROR", "Maximum 10 items per batch")
	assert.Equal(t, int32(0), s.summarizer.calls.Load())
}

/* ───────── 履歴・取得・削除 ───────── */

func TestHistoryIsolationAndOwnership(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, jsonRequest(http.MethodPost, "/api/summarize", map[string]string{"text": "first"}), "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode[summary.DTO](t, rec).ID

	history := decode[summary.HistoryResponse](t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/history", nil), "u1"))
	assert.Equal(t, 1, history.Total)
	require.Len(t, history.Summaries, 1)
	assert.Equal(t, id, history.Summaries[0].ID)

	other := decode[summary.HistoryResponse](t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/history", nil), "u2"))
	assert.Equal(t, 0, other.Total)
	assert.NotNil(t, other.Summaries)

	rec = s.do(t, httptest.NewRequest(http.MethodGet, "/api/summary/"+id, nil), "u2")
	assertError(t, rec, http.StatusForbidden, "FORBIDDEN", "Access denied")

	rec = s.do(t, httptest.NewRequest(http.MethodDelete, "/api/summary/"+id, nil), "u2")
	assertError(t, rec, http.StatusForbidden, "FORBIDDEN", "Access denied")

	rec = s.do(t, httptest.NewRequest(http.MethodGet, "/api/summary/"+id, nil), "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "first", decode[summary.DTO](t, rec).Text)

	rec = s.do(t, httptest.NewRequest(http.MethodDelete, "/api/summary/"+id, nil), "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Summary deleted successfully", decode[summary.MessageResponse](t, rec).Message)

	rec = s.do(t, httptest.NewRequest(http.MethodGet, "/api/summary/"+id, nil), "u1")
	assertError(t, rec, http.StatusNotFound, "NOT_FOUND", "Summary not found")

	history = decode[summary.HistoryResponse](t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/history", nil), "u1"))
	assert.Equal(t, 0, history.Total)
}

func TestGetUnknownID(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/summary/missing", nil), "u1")

	assertError(t, rec, http.StatusNotFound, "NOT_FOUND", "Summary not found")
}

func TestAPIHealth(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil), "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[summary.APIHealthResponse](t, rec)
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, summary.Version, got.Version)
}
