package extractor

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"syscall"
	"time"

	"genai-summarizer/internal/config"
	"genai-summarizer/internal/domain/entity"
	"genai-summarizer/internal/resilience/circuitbreaker"
	"genai-summarizer/internal/resilience/retry"
)

// Fetch failure causes. They are wrapped in an entity URL fetch error.
var (
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrPrivateAddress   = errors.New("address is in a private network")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrTimeout          = errors.New("request timed out")
)

// FetchConfig controls URL fetching.
type FetchConfig struct {
	// Timeout bounds one whole request, including reading the body.
	Timeout time.Duration
	// MaxBodySize is the maximum number of body bytes read; larger pages fail.
	MaxBodySize int64
	// MaxRedirects is the maximum number of redirects followed.
	MaxRedirects int
	// DenyPrivateIPs refuses connections to loopback, link-local and private addresses.
	// It is checked at dial time, so redirects and DNS rebinding are covered too.
	DenyPrivateIPs bool
	UserAgent      string
}

// DefaultFetchConfig returns the fetch limits used by the service.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Timeout:      10 * time.Second,
		MaxBodySize:  10 * 1024 * 1024,
		MaxRedirects: 5,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	}
}

// FetchConfigFrom converts the configured extractor settings.
func FetchConfigFrom(c config.ExtractorConfig) FetchConfig {
	fc := DefaultFetchConfig()
	fc.Timeout = c.FetchTimeout
	fc.MaxBodySize = c.MaxBodySize
	fc.DenyPrivateIPs = c.DenyPrivateIPs
	if c.UserAgent != "" {
		fc.UserAgent = c.UserAgent
	}
	return fc
}

// Page is a fetched document.
type Page struct {
	URL         *url.URL // final URL after redirects
	ContentType string
	Body        []byte
}

// maxHostBreakers caps the per-host breaker table.
const maxHostBreakers = 1024

// Fetcher downloads pages for summarization.
//
// Every host gets its own circuit breaker, so a dead site only blocks
// further requests to that site.
//
// Thread safety: Fetcher is safe for concurrent use.
type Fetcher struct {
	client *http.Client
	config FetchConfig

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher with its own HTTP client.
func NewFetcher(config FetchConfig) *Fetcher {
	f := &Fetcher{
		config:   config,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}

	dialer := &net.Dialer{Timeout: config.Timeout, KeepAlive: 30 * time.Second}
	if config.DenyPrivateIPs {
		dialer.Control = denyPrivate
	}

	f.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
				return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
			}
			return nil
		},
	}
	return f
}

// denyPrivate rejects dials to private addresses after DNS resolution.
func denyPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(host); ip != nil && entity.IsPrivateIP(ip) {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, ip)
	}
	return nil
}

// breakerSuccess keeps failures caused by the remote page itself, such as a
// 404 or a private address, from tripping the breaker. A caller that gave
// up says nothing about the host either.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 500
	}
	return errors.Is(err, ErrPrivateAddress) || errors.Is(err, ErrBodyTooLarge) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// breakerFor returns the breaker of the host in rawURL, creating it on
// first use. When the table is full, breakers that are not open are
// dropped; if every one is open the table starts over.
func (f *Fetcher) breakerFor(rawURL string) *circuitbreaker.CircuitBreaker {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = strings.ToLower(u.Host)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if cb, ok := f.breakers[host]; ok {
		return cb
	}
	if len(f.breakers) >= maxHostBreakers {
		for h, cb := range f.breakers {
			if !cb.IsOpen() {
				delete(f.breakers, h)
			}
		}
		if len(f.breakers) >= maxHostBreakers {
			clear(f.breakers)
		}
	}

	cfg := circuitbreaker.URLFetchConfig()
	cfg.Name += ":" + host
	cfg.IsSuccessful = breakerSuccess
	cfg.Untracked = true
	cb := circuitbreaker.New(cfg)
	f.breakers[host] = cb
	return cb
}

// Fetch GETs rawURL and returns the body. Every failure is an entity URL
// fetch error; the cause is kept for logs.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	page, err := circuitbreaker.Run(f.breakerFor(rawURL), func() (*Page, error) {
		return f.doFetch(ctx, rawURL)
	})
	if err == nil {
		return page, nil
	}
	if circuitbreaker.IsRejected(err) {
		return nil, entity.URLFetchError("URL fetching is temporarily unavailable", err)
	}
	return nil, entity.URLFetchError(fetchFailureMessage(err), err)
}

func fetchFailureMessage(err error) string {
	var httpErr *retry.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Failed to fetch URL: HTTP %d", httpErr.StatusCode)
	case errors.Is(err, ErrTimeout):
		return "Failed to fetch URL: request timed out"
	case errors.Is(err, ErrBodyTooLarge):
		return "Failed to fetch URL: page is too large"
	case errors.Is(err, ErrPrivateAddress):
		return "Failed to fetch URL: address is not allowed"
	case errors.Is(err, ErrTooManyRedirects):
		return "Failed to fetch URL: too many redirects"
	default:
		return "Failed to fetch URL"
	}
}

func (f *Fetcher) doFetch(ctx context.Context, rawURL string) (*Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: exceeded %v", ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return &Page{
		URL:         finalURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
