// Package pathutil normalizes request paths for use as metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	// Summary records are addressed by opaque IDs
	{Pattern: regexp.MustCompile(`^/api/summary/[^/]+$`), Template: "/api/summary/:id"},

	// Swagger UI serves many static assets under one prefix
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /api/summary/5f0c...) to template format
// (e.g., /api/summary/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/api/summary/5f0c7a3e")   // "/api/summary/:id"
//	NormalizePath("/api/summarize/file")     // "/api/summarize/file" (unchanged)
//	NormalizePath("/swagger/index.html")     // "/swagger/*"
//	NormalizePath("/health")                 // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/summary/abc?x=1")    // "/api/summary/:id"
//	NormalizePath("/api/summary/abc/")       // "/api/summary/:id"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization: the template patterns plus the static routes.
func GetExpectedCardinality() int {
	const staticCount = 14 // /api/*, /auth/*, probes, /metrics
	return len(pathPatterns) + staticCount
}
