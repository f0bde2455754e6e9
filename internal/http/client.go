// Package http provides the transports volley uses to issue GET requests.
//
// Two implementations share the same capability, Get(ctx, url) returning the
// response status: Client on top of net/http and FastClient on top of
// fasthttp. Both drain response bodies so pooled connections are reused.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/rs/dnscache"
)

// DefaultTimeout is used when no timeout option is given.
const DefaultTimeout = 10 * time.Second

// settings holds the options shared by both transports.
type settings struct {
	timeout            time.Duration
	maxConnsPerHost    int
	userAgent          string
	insecureSkipVerify bool
	resolver           *dnscache.Resolver
}

// ClientOption configures a transport.
type ClientOption func(*settings)

// WithTimeout sets the transport-level request timeout. Callers may still
// impose a shorter deadline through the request context.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithMaxConnsPerHost sizes the connection pool, normally to the run's
// concurrency ceiling.
func WithMaxConnsPerHost(n int) ClientOption {
	return func(s *settings) {
		s.maxConnsPerHost = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(s *settings) {
		s.userAgent = ua
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) ClientOption {
	return func(s *settings) {
		s.insecureSkipVerify = skip
	}
}

// WithDNSCache routes dialing through a caching resolver so repeated
// connections to the target skip DNS lookups.
func WithDNSCache(resolver *dnscache.Resolver) ClientOption {
	return func(s *settings) {
		s.resolver = resolver
	}
}

func newSettings(options []ClientOption) *settings {
	s := &settings{timeout: DefaultTimeout}
	for _, option := range options {
		option(s)
	}
	return s
}

// Client issues GET requests through net/http.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new net/http based client with the given options.
func NewClient(options ...ClientOption) *Client {
	s := newSettings(options)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if s.maxConnsPerHost > 0 {
		transport.MaxConnsPerHost = s.maxConnsPerHost
		transport.MaxIdleConnsPerHost = s.maxConnsPerHost
		if transport.MaxIdleConns < s.maxConnsPerHost {
			transport.MaxIdleConns = s.maxConnsPerHost
		}
	}
	if s.insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if s.resolver != nil {
		transport.DialContext = newCachingDialer(s.resolver, s.timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   s.timeout,
			Transport: transport,
		},
		userAgent: s.userAgent,
	}
}

// Get performs a GET request and returns the response status code.
//
// The body is read to completion and closed so the connection returns to the
// pool. A failure to read the body does not change the reported status.
func (c *Client) Get(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// CloseIdleConnections closes pooled connections once a run is over.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
