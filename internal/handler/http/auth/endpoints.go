package auth

import "strings"

// PublicEndpoints are served without resolving an owner.
//
//   - /health, /ready, /live, /api/health: probes
//   - /metrics: Prometheus scraping
//   - /swagger/: API documentation
//   - /auth/token, /auth/guest, /api/login, /api/guest-token: token issuance
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/api/health",
	"/metrics",
	"/swagger/",
	"/auth/token",
	"/auth/guest",
	"/api/login",
	"/api/guest-token",
}

// IsPublicEndpoint reports whether path is a public endpoint.
//
// Entries ending in '/' match by prefix. Other entries match exactly, with
// an optional trailing slash, so /health does not cover /healthcheck.
//
//	IsPublicEndpoint("/health")             // true
//	IsPublicEndpoint("/health/")            // true
//	IsPublicEndpoint("/healthcheck")        // false
//	IsPublicEndpoint("/swagger/index.html") // true
//	IsPublicEndpoint("/api/summarize")      // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
	}
	return false
}
