package http

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/dnscache"
	"github.com/sirupsen/logrus"
)

// NewResolver creates a caching DNS resolver that logs cache misses at debug
// level.
func NewResolver(log *logrus.Entry) *dnscache.Resolver {
	return &dnscache.Resolver{
		OnCacheMiss: func() {
			if log != nil {
				log.Debug("dns cache miss")
			}
		},
	}
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// newCachingDialer resolves the host through resolver and tries each address
// in turn until one connects.
func newCachingDialer(resolver *dnscache.Resolver, timeout time.Duration) dialFunc {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}

		ips, err := resolver.LookupHost(ctx, host)
		if err != nil {
			return nil, err
		}
		if len(ips) == 0 {
			return nil, fmt.Errorf("no addresses found for %s", host)
		}

		var conn net.Conn
		for _, ip := range ips {
			conn, err = dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
			if err == nil {
				return conn, nil
			}
		}
		return nil, err
	}
}
