package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised by the summarization pipeline.
// The string value is the stable machine-readable code returned to callers.
type ErrorKind string

const (
	KindValidation     ErrorKind = "VALIDATION_ERROR"
	KindFileFormat     ErrorKind = "FILE_FORMAT_ERROR"
	KindFileSize       ErrorKind = "FILE_SIZE_ERROR"
	KindExtraction     ErrorKind = "EXTRACTION_ERROR"
	KindURLFetch       ErrorKind = "URL_FETCH_ERROR"
	KindSummarization  ErrorKind = "SUMMARIZATION_ERROR"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindAuthentication ErrorKind = "AUTHENTICATION_ERROR"
	KindInternal       ErrorKind = "INTERNAL_ERROR"
)

// Code returns the machine-readable code for the kind.
func (k ErrorKind) Code() string { return string(k) }

// Error is a classified pipeline failure.
// Message is human readable and safe to show to callers; Err keeps the
// underlying cause for logs and errors.Is/As chains.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error returns the message, followed by the cause when one is present.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
// This lets callers write errors.Is(err, entity.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Kind sentinels for errors.Is comparisons. They carry no message, so they
// match any *Error of the same kind.
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrFileFormat     = &Error{Kind: KindFileFormat}
	ErrFileSize       = &Error{Kind: KindFileSize}
	ErrExtraction     = &Error{Kind: KindExtraction}
	ErrURLFetch       = &Error{Kind: KindURLFetch}
	ErrSummarization  = &Error{Kind: KindSummarization}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrForbidden      = &Error{Kind: KindForbidden}
	ErrAuthentication = &Error{Kind: KindAuthentication}
)

// NewError builds a classified error.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func FileFormatError(format string) *Error {
	return &Error{Kind: KindFileFormat, Message: fmt.Sprintf("Unsupported file format: %s", format)}
}

func FileSizeError(maxBytes int64) *Error {
	return &Error{
		Kind:    KindFileSize,
		Message: fmt.Sprintf("File size exceeds maximum allowed size of %.1fMB", float64(maxBytes)/(1024*1024)),
	}
}

func ExtractionError(message string, cause error) *Error {
	return &Error{Kind: KindExtraction, Message: message, Err: cause}
}

func URLFetchError(message string, cause error) *Error {
	return &Error{Kind: KindURLFetch, Message: message, Err: cause}
}

func SummarizationError(message string, cause error) *Error {
	return &Error{Kind: KindSummarization, Message: message, Err: cause}
}

func NotFoundError(what string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func ForbiddenError() *Error {
	return &Error{Kind: KindForbidden, Message: "Access denied"}
}

func AuthenticationError(message string, cause error) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when err is unclassified. A nil error has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-facing message for err.
// Unclassified errors never expose their text.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "An internal error occurred"
}
