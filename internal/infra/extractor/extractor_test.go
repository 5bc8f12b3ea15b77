package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/resilience/circuitbreaker"
)

func newTestExtractor(cfg FetchConfig, mode string) *Extractor {
	return New(NewFetcher(cfg), mode)
}

func testFetchConfig() FetchConfig {
	cfg := DefaultFetchConfig()
	cfg.Timeout = 2 * time.Second
	return cfg
}

/* ───────── text ───────── */

func TestExtract_TextValidUTF8Unchanged(t *testing.T) {
	e := New(nil, ModeText)
	in := "The quick brown fox 🦊 jumps over the lazy dog. 日本語"

	got, err := e.Extract(context.Background(), entity.FormatText, []byte(in))

	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestExtract_TextInvalidBytesElided(t *testing.T) {
	e := New(nil, ModeText)
	in := []byte{'a', 'b', 0xff, 0xfe, 'c', 0xc3, '!', 'd'}

	got, err := e.Extract(context.Background(), entity.FormatText, in)

	require.NoError(t, err)
	assert.Equal(t, "abc!d", got)
}

/* ───────── pdf ───────── */

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDFPagesInOrder(t *testing.T) {
	doc := buildPDF(t, "Hello First", "World Second", "Third page")

	got, err := New(nil, ModeText).Extract(context.Background(), entity.FormatPDF, doc)

	require.NoError(t, err)
	first := strings.Index(got, "Hello First")
	second := strings.Index(got, "World Second")
	third := strings.Index(got, "Third page")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "every page text is present, got %q", got)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestExtract_PDFCorrupt(t *testing.T) {
	valid := buildPDF(t, "Hello First", "World Second")
	xref := bytes.Index(valid, []byte("xref"))
	require.Greater(t, xref, 189)

	inputs := map[string][]byte{
		"random bytes":       []byte("this is not a pdf at all"),
		"header only":        []byte("%PDF-1.4\n%âãÏÓ\n"),
		"truncated body":     []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R\nendobj\ntrailer\n<<"),
		"empty":              {},
		"cut inside objects": valid[:189],
		"cut at half":        valid[:len(valid)/2],
		"cut before xref":    valid[:xref],
		"cut inside xref":    valid[:xref+30],
	}

	e := New(nil, ModeText)
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = e.Extract(context.Background(), entity.FormatPDF, in)
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrExtraction)
			assert.Equal(t, "Could not read PDF document", entity.PublicMessage(err))
		})
	}
}

/* ───────── docx ───────── */

const docxNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	ct, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)

	if documentXML != "" {
		w, err := zw.Create("word/document.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte(documentXML))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_DOCXParagraphsThenTables(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + docxNS + `><w:body>
<w:p><w:r><w:t>Quarterly</w:t></w:r><w:r><w:t xml:space="preserve"> report</w:t></w:r></w:p>
<w:tbl>
  <w:tblPr/>
  <w:tr><w:tc><w:p><w:r><w:t>Region</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Sales</w:t></w:r></w:p></w:tc></w:tr>
  <w:tr><w:tc><w:p><w:r><w:t>EMEA</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>42</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
<w:p><w:hyperlink><w:r><w:t>Second</w:t></w:r></w:hyperlink><w:r><w:tab/><w:t>line</w:t></w:r></w:p>
<w:p><w:r><w:delText>removed</w:delText><w:t>Kept</w:t></w:r></w:p>
<w:sectPr/>
</w:body></w:document>`

	e := New(nil, ModeText)
	got, err := e.Extract(context.Background(), entity.FormatDOCX, buildDOCX(t, doc))

	require.NoError(t, err)
	assert.Equal(t, "Quarterly report\nSecond\tline\nKept\nRegion Sales\nEMEA 42\n", got)
}

func TestExtract_DOCXMultiParagraphCell(t *testing.T) {
	doc := `<w:document ` + docxNS + `><w:body>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc><w:tc><w:p/></w:tc></w:tr></w:tbl>
</w:body></w:document>`

	got, err := New(nil, ModeText).Extract(context.Background(), entity.FormatDOCX, buildDOCX(t, doc))

	require.NoError(t, err)
	assert.Equal(t, "a\nb \n", got)
}

func TestExtract_DOCXMalformed(t *testing.T) {
	tests := map[string][]byte{
		"not a zip":       []byte("PK but not really"),
		"missing part":    buildDOCX(t, ""),
		"broken xml":      buildDOCX(t, `<w:document `+docxNS+`><w:body><w:p><w:t>open`),
		"mismatched tags": buildDOCX(t, `<w:document `+docxNS+`><w:body><w:p></w:body></w:document>`),
		"no body":         buildDOCX(t, `<w:document `+docxNS+`></w:document>`),
	}

	e := New(nil, ModeText)
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), entity.FormatDOCX, in)

			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrExtraction)
		})
	}
}

func TestExtract_DOCXContentControls(t *testing.T) {
	doc := `<w:document ` + docxNS + `><w:body>
<w:p><w:r><w:t>Before</w:t></w:r></w:p>
<w:sdt><w:sdtPr><w:alias w:val="Title"/></w:sdtPr><w:sdtContent><w:p><w:r><w:t>Inside control</w:t></w:r></w:p></w:sdtContent></w:sdt>
<w:customXml w:element="note"><w:p><w:r><w:t>Inside custom</w:t></w:r></w:p></w:customXml>
<w:sdt><w:sdtContent><w:tbl><w:tr><w:tc><w:p><w:r><w:t>cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl></w:sdtContent></w:sdt>
<w:p><w:r><w:t>After</w:t></w:r></w:p>
</w:body></w:document>`

	got, err := New(nil, ModeText).Extract(context.Background(), entity.FormatDOCX, buildDOCX(t, doc))

	require.NoError(t, err)
	assert.Equal(t, "Before\nInside control\nInside custom\nAfter\ncell\n", got)
}

/* ───────── url ───────── */

func TestExtract_URLStripsScriptAndStyle(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>News</title><style>p { color: red }</style></head>
<body><h1>Hello</h1><p>Brown
   fox</p><script>var tracking = 1;</script><div>jumps</div></body></html>`))
	}))
	defer server.Close()

	e := newTestExtractor(testFetchConfig(), ModeText)
	got, err := e.Extract(context.Background(), entity.FormatURL, []byte(server.URL))

	require.NoError(t, err)
	assert.Equal(t, "News Hello Brown fox jumps", got)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestExtract_URLReadabilityMode(t *testing.T) {
	article := strings.Repeat("The committee approved the new budget after a long debate about public transport. ", 20)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Budget</title></head><body>
<nav><a href="/">Home</a><a href="/about">About us</a></nav>
<article><h1>Budget approved</h1><p>` + article + `</p></article>
<footer>Copyright footer text</footer></body></html>`))
	}))
	defer server.Close()

	e := newTestExtractor(testFetchConfig(), ModeReadability)
	got, err := e.ExtractURL(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, got, "The committee approved the new budget")
	assert.NotContains(t, got, "Copyright footer text")
}

func TestExtract_URLHTTPErrorIsFetchError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer server.Close()

			_, err := newTestExtractor(testFetchConfig(), ModeText).Extract(context.Background(), entity.FormatURL, []byte(server.URL))

			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrURLFetch)
			assert.NotErrorIs(t, err, entity.ErrExtraction)
		})
	}
}

func TestExtract_URLNetworkFailureIsFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestExtractor(testFetchConfig(), ModeText).Extract(context.Background(), entity.FormatURL, []byte(url))

	assert.ErrorIs(t, err, entity.ErrURLFetch)
}

func TestExtract_URLEmptyPageIsExtractionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><script>var a = 1;</script></head><body>  <style>.x{}</style> </body></html>`))
	}))
	defer server.Close()

	_, err := newTestExtractor(testFetchConfig(), ModeText).Extract(context.Background(), entity.FormatURL, []byte(server.URL))

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrExtraction)
	assert.NotErrorIs(t, err, entity.ErrURLFetch)
}

func TestExtract_URLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	cfg := testFetchConfig()
	cfg.Timeout = 50 * time.Millisecond
	_, err := newTestExtractor(cfg, ModeText).ExtractURL(context.Background(), server.URL)

	assert.ErrorIs(t, err, entity.ErrURLFetch)
}

func TestExtract_URLBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>" + strings.Repeat("a", 2048) + "</p>"))
	}))
	defer server.Close()

	cfg := testFetchConfig()
	cfg.MaxBodySize = 1024
	_, err := newTestExtractor(cfg, ModeText).ExtractURL(context.Background(), server.URL)

	assert.ErrorIs(t, err, entity.ErrURLFetch)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestExtract_URLDenyPrivateIPs(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte("<p>internal</p>"))
	}))
	defer server.Close()

	cfg := testFetchConfig()
	cfg.DenyPrivateIPs = true
	_, err := newTestExtractor(cfg, ModeText).ExtractURL(context.Background(), server.URL)

	assert.ErrorIs(t, err, entity.ErrURLFetch)
	assert.ErrorIs(t, err, ErrPrivateAddress)
	assert.Zero(t, calls)
}

func TestExtract_URLWithoutFetcher(t *testing.T) {
	_, err := New(nil, ModeText).ExtractURL(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, entity.ErrURLFetch)
}

func TestFetch_DeadHostDoesNotBlockOtherHosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>alive</p>"))
	}))
	defer server.Close()

	f := NewFetcher(testFetchConfig())
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := f.Fetch(ctx, "http://127.0.0.1:1/dead")
		require.Error(t, err)
	}

	_, err := f.Fetch(ctx, "http://127.0.0.1:1/dead")
	require.Error(t, err)
	assert.True(t, circuitbreaker.IsRejected(err), "dead host is cut off, got %v", err)
	assert.Equal(t, "URL fetching is temporarily unavailable", entity.PublicMessage(err))

	page, err := f.Fetch(ctx, server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(page.Body), "alive")
}

func TestFetch_CanceledCallerDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>alive</p>"))
	}))
	defer server.Close()

	f := NewFetcher(testFetchConfig())
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 15; i++ {
		_, err := f.Fetch(canceled, server.URL)
		require.Error(t, err)
		require.False(t, circuitbreaker.IsRejected(err), "attempt %d rejected", i)
	}

	_, err := f.Fetch(context.Background(), server.URL)
	assert.NoError(t, err)
}

func TestExtract_UnknownFormat(t *testing.T) {
	_, err := New(nil, ModeText).Extract(context.Background(), entity.Format("rtf"), []byte("{\\rtf1}"))

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrFileFormat)
	assert.Equal(t, "Unsupported file format: rtf", err.Error())
}

func TestFetchConfigFrom(t *testing.T) {
	c := config.Default().Extractor
	c.DenyPrivateIPs = true
	c.UserAgent = ""

	fc := FetchConfigFrom(c)

	assert.Equal(t, c.FetchTimeout, fc.Timeout)
	assert.Equal(t, c.MaxBodySize, fc.MaxBodySize)
	assert.True(t, fc.DenyPrivateIPs)
	assert.Equal(t, DefaultFetchConfig().UserAgent, fc.UserAgent, "empty user agent keeps the default")
	assert.Equal(t, DefaultFetchConfig().MaxRedirects, fc.MaxRedirects)
}
