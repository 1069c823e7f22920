package http

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter applies per-domain token bucket rate limiting.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   RateLimiterConfig
}

// RateLimiterConfig defines request rates per domain.
type RateLimiterConfig struct {
	// DefaultRPS is the request rate for domains without a custom rate.
	// Zero disables limiting for those domains.
	DefaultRPS float64
	// CustomRates maps domain suffixes to requests per second.
	CustomRates map[string]float64
	// Burst is the token bucket burst size (default 1).
	Burst int
}

// DefaultRateLimiterConfig returns rates tuned for YouTube endpoints.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		DefaultRPS: 2.5,
		CustomRates: map[string]float64{
			"youtube.com":    2.5,
			"googleapis.com": 1.0,
		},
		Burst: 1,
	}
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the rate limit allows a request to urlStr,
// or the context is done.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}
	limiter := rl.limiterFor(extractDomain(urlStr))
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// limiterFor returns the limiter for a domain, creating it on first use.
// Nil means the domain is unlimited.
func (rl *RateLimiter) limiterFor(domain string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.limiters[domain]; ok {
		return l
	}

	rps := rl.config.DefaultRPS
	for suffix, r := range rl.config.CustomRates {
		if strings.HasSuffix(domain, suffix) {
			rps = r
			break
		}
	}
	if rps <= 0 {
		rl.limiters[domain] = nil
		return nil
	}

	l := rate.NewLimiter(rate.Limit(rps), rl.config.Burst)
	rl.limiters[domain] = l
	return l
}

// extractDomain returns the registrable host portion of a URL.
func extractDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return urlStr
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
