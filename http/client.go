// Package http provides the HTTP client infrastructure for YouTube
// interactions: per-domain rate limiting, cookie session pass-through,
// proxy list rotation, and throttling-aware error classification.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"
)

// Client wraps an HTTP client with rate limiting and session handling.
// Retry policy belongs to callers; the client only classifies responses.
type Client struct {
	base        *http.Client
	config      *Config
	rateLimiter *RateLimiter
	session     *Session
	proxies     []*url.URL
	proxyIndex  atomic.Uint64
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// UserAgent for HTTP requests.
	UserAgent string

	// RateLimiter configuration.
	RateLimiter RateLimiterConfig

	// ProxyURLs are rotated round-robin across requests. Empty means direct.
	ProxyURLs []string

	// CookieFile is an optional path to an opaque cookie blob.
	CookieFile string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		RateLimiter: DefaultRateLimiterConfig(),
	}
}

// New creates a new HTTP client with the given configuration.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	session, err := NewSession()
	if err != nil {
		return nil, err
	}
	if cfg.CookieFile != "" {
		if err := session.LoadCookies(cfg.CookieFile); err != nil {
			return nil, err
		}
	}

	c := &Client{
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimiter),
		session:     session,
	}

	for _, p := range cfg.ProxyURLs {
		u, err := url.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url %q: %w", p, err)
		}
		c.proxies = append(c.proxies, u)
	}

	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	if len(c.proxies) > 0 {
		transport.Proxy = c.nextProxy
	}

	c.base = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		Jar:       session.Jar(),
	}

	return c, nil
}

// nextProxy rotates through the configured proxy list.
func (c *Client) nextProxy(*http.Request) (*url.URL, error) {
	i := c.proxyIndex.Add(1)
	return c.proxies[int(i-1)%len(c.proxies)], nil
}

// Response is an HTTP response with the body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, nil)
}

// Do performs a single HTTP request after waiting for the rate limiter.
// Throttling responses (429, 503) are returned as *RateLimitError; other
// non-2xx statuses as *HTTPError.
func (c *Client) Do(ctx context.Context, method, urlStr string, body io.Reader, headers map[string]string) (*Response, error) {
	if err := c.rateLimiter.Wait(ctx, urlStr); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, err
	}

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.session.Apply(req)

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusServiceUnavailable {
		return nil, &RateLimitError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       bodyBytes,
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// parseRetryAfter extracts the Retry-After header value.
func parseRetryAfter(header http.Header) time.Duration {
	retryAfter := header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}
	return 0
}

// Close releases idle connections.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}
