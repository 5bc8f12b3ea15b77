package entity

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateURL validates the format of a URL submitted for summarization.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Network reachability and private address checks are left to the fetcher.
func ValidateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ValidationError("URL is required")
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return ValidationError(fmt.Sprintf("url must not exceed %d characters", maxURLLength))
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ValidationError("URL is malformed")
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return ValidationError("URL must use http or https scheme")
	}

	if parsedURL.Hostname() == "" {
		return ValidationError("URL must have a valid host")
	}

	return nil
}

var privateCIDRs = func() []*net.IPNet {
	cidrs := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"169.254.0.0/16", // link-local, includes cloud metadata
		"fc00::/7",
	}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, _ := net.ParseCIDR(c)
		nets = append(nets, n)
	}
	return nets
}()

// IsPrivateIP reports whether ip is loopback, link-local, unspecified or
// inside a private range.
func IsPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return true
	}
	for _, n := range privateCIDRs {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
