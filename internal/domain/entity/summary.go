package entity

import (
	"strings"
	"time"
)

// LengthTier is a named summary size target.
type LengthTier string

const (
	TierShort  LengthTier = "short"
	TierMedium LengthTier = "medium"
	TierLong   LengthTier = "long"
)

// DefaultTier is used when a caller does not specify a tier.
const DefaultTier = TierMedium

// Tiers lists the supported tiers in ascending size.
var Tiers = []LengthTier{TierShort, TierMedium, TierLong}

// ParseLengthTier converts a caller-supplied token into a LengthTier.
// An empty token yields DefaultTier; anything else unknown is a validation error.
func ParseLengthTier(s string) (LengthTier, error) {
	switch LengthTier(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultTier, nil
	case TierShort:
		return TierShort, nil
	case TierMedium:
		return TierMedium, nil
	case TierLong:
		return TierLong, nil
	default:
		return "", ValidationError("summary_length must be one of short, medium, long")
	}
}

// Valid reports whether t is one of the supported tiers.
func (t LengthTier) Valid() bool {
	return t == TierShort || t == TierMedium || t == TierLong
}

// SourceKind marks where a record's source text came from.
type SourceKind string

const (
	SourceText  SourceKind = "text"
	SourceFile  SourceKind = "file"
	SourceURL   SourceKind = "url"
	SourceBatch SourceKind = "batch"
)

// Provenance records how the text of a SummaryRecord was obtained.
// At most one of Filename and URL is set, matching Kind.
type Provenance struct {
	Kind     SourceKind
	Filename string
	URL      string
}

// TextProvenance is the marker for direct text requests.
func TextProvenance() Provenance { return Provenance{Kind: SourceText} }

// FileProvenance is the marker for uploaded files.
func FileProvenance(filename string) Provenance {
	return Provenance{Kind: SourceFile, Filename: filename}
}

// URLProvenance is the marker for fetched pages.
func URLProvenance(u string) Provenance { return Provenance{Kind: SourceURL, URL: u} }

// BatchProvenance is the marker for batch sub-items, which carry no filename or URL.
func BatchProvenance() Provenance { return Provenance{Kind: SourceBatch} }

// SummaryRecord is an immutable summary result with its ownership metadata.
type SummaryRecord struct {
	ID         string
	Text       string // full text for direct requests, an excerpt for file/URL sources
	Summary    string
	Length     LengthTier
	CreatedAt  time.Time
	OwnerID    string
	Provenance Provenance
}

// Validate checks the structural invariants of a record before it is stored.
func (r *SummaryRecord) Validate() error {
	if r.ID == "" {
		return ValidationError("record id is required")
	}
	if r.OwnerID == "" {
		return ValidationError("record owner is required")
	}
	if !r.Length.Valid() {
		return ValidationError("record length tier is invalid")
	}
	switch r.Provenance.Kind {
	case SourceText, SourceBatch:
		if r.Provenance.Filename != "" || r.Provenance.URL != "" {
			return ValidationError("text records carry no filename or url")
		}
	case SourceFile:
		if r.Provenance.Filename == "" || r.Provenance.URL != "" {
			return ValidationError("file records carry exactly a filename")
		}
	case SourceURL:
		if r.Provenance.URL == "" || r.Provenance.Filename != "" {
			return ValidationError("url records carry exactly a url")
		}
	default:
		return ValidationError("record provenance is invalid")
	}
	return nil
}
