package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/valyala/fasthttp"
)

// FastClient issues GET requests through fasthttp.
//
// fasthttp has no context support, so cancellation is approximated: the
// request deadline is taken from ctx and an already-cancelled ctx fails fast.
type FastClient struct {
	client  *fasthttp.Client
	timeout time.Duration
}

// NewFastClient creates a new fasthttp based client with the given options.
func NewFastClient(options ...ClientOption) *FastClient {
	s := newSettings(options)

	client := &fasthttp.Client{
		Name:                s.userAgent,
		MaxConnsPerHost:     s.maxConnsPerHost,
		MaxConnWaitTimeout:  s.timeout,
		ReadTimeout:         s.timeout,
		WriteTimeout:        s.timeout,
		MaxIdleConnDuration: 90 * time.Second,
	}
	if s.insecureSkipVerify {
		client.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if s.resolver != nil {
		dial := newCachingDialer(s.resolver, s.timeout)
		client.Dial = func(addr string) (net.Conn, error) {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			return dial(ctx, "tcp", addr)
		}
	}

	return &FastClient{client: client, timeout: s.timeout}
}

// Get performs a GET request and returns the response status code.
// fasthttp timeouts are reported as context.DeadlineExceeded.
func (c *FastClient) Get(ctx context.Context, url string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		if IsTimeout(err) && !errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return 0, err
	}
	return resp.StatusCode(), nil
}

// CloseIdleConnections closes pooled connections once a run is over.
func (c *FastClient) CloseIdleConnections() {
	c.client.CloseIdleConnections()
}
