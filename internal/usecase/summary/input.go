package summary

import (
	"io"

	"genai-summarizer/internal/domain/entity"
)

// Input is one document to summarize. The set of implementations is closed:
// TextInput, FileInput and URLInput.
type Input interface {
	source() entity.SourceKind
}

// TextInput is text submitted directly by the caller.
type TextInput struct {
	Text string
}

// FileInput is an uploaded document. The format is taken from the
// filename extension; Content is read at most up to the size limit.
type FileInput struct {
	Filename string
	Content  io.Reader
}

// URLInput is a page to fetch and summarize.
type URLInput struct {
	URL string
}

func (TextInput) source() entity.SourceKind { return entity.SourceText }
func (FileInput) source() entity.SourceKind { return entity.SourceFile }
func (URLInput) source() entity.SourceKind  { return entity.SourceURL }

// BatchItem is one entry of a batch request. Only text items exist today;
// new kinds are added as new implementations.
type BatchItem interface {
	batchText() string
}

// TextItem is a batch entry holding text to summarize.
type TextItem struct {
	Text string
}

func (t TextItem) batchText() string { return t.Text }

// BatchResult is the outcome of one batch item, at the item's input position.
// Exactly one of Record and Err is set.
type BatchResult struct {
	Record *entity.SummaryRecord
	Err    error
}
