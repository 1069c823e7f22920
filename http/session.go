package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"
)

// Session carries cookies and default headers across requests.
// Cookies loaded from disk are passed through verbatim and never validated.
type Session struct {
	jar     http.CookieJar
	headers map[string]string
}

// storedCookie is the on-disk cookie representation.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
	Secure  bool      `json:"secure,omitempty"`
}

// NewSession creates a session with an empty cookie jar.
func NewSession() (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Session{
		jar:     jar,
		headers: make(map[string]string),
	}, nil
}

// LoadCookies reads a JSON cookie file into the jar.
// The file contents are treated as opaque credential material.
func (s *Session) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cookie file: %w", err)
	}

	var cookies []storedCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("parse cookie file %s: %w", path, err)
	}

	byDomain := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		byDomain[c.Domain] = append(byDomain[c.Domain], &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: c.Expires,
			Secure:  c.Secure,
		})
	}

	for domain, cs := range byDomain {
		u := &url.URL{Scheme: "https", Host: domain}
		s.jar.SetCookies(u, cs)
	}
	return nil
}

// SetHeader sets a default header applied to every request in this session.
func (s *Session) SetHeader(key, value string) {
	s.headers[key] = value
}

// Jar returns the session cookie jar for use with an http.Client.
func (s *Session) Jar() http.CookieJar {
	if s == nil {
		return nil
	}
	return s.jar
}

// Apply sets session headers on a request without overriding explicit ones.
func (s *Session) Apply(req *http.Request) {
	if s == nil {
		return
	}
	for k, v := range s.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
}
