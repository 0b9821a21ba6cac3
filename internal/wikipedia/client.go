// Package wikipedia provides a client for searching and fetching
// encyclopedia articles through the MediaWiki action API.
package wikipedia

import (
	"net/http"
	"strings"
	"time"

	"github.com/nizsak/wikiseries/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://en.wikipedia.org"
	defaultUserAgent     = "wikiseries/1.0 (https://github.com/nizsak/wikiseries)"
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 1.0 // wiki etiquette: steady, polite pacing
	defaultSearchLimit   = 10
	maxPageBytes         = 8 << 20
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a MediaWiki API client.
type Client struct {
	baseURL       string
	userAgent     string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	searchLimit   int
}

// NewClient creates a new wiki API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       defaultBaseURL,
		userAgent:     defaultUserAgent,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		rateLimiter:   ratelimit.New("wikipedia", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		searchLimit:   defaultSearchLimit,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the wiki base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(d HTTPDoer) Option {
	return func(client *Client) {
		if d != nil {
			client.httpClient = d
		}
	}
}

// WithBaseURL sets a custom wiki base URL.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithSearchLimit sets the maximum number of search results requested.
func WithSearchLimit(limit int) Option {
	return func(client *Client) {
		if limit > 0 {
			client.searchLimit = limit
		}
	}
}
