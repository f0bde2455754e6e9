package http

import (
	"context"
	"fmt"
)

// Transport kinds accepted by NewTransport.
const (
	KindNet  = "net"
	KindFast = "fast"
)

// Transport is implemented by Client and FastClient.
type Transport interface {
	Get(ctx context.Context, url string) (int, error)
	CloseIdleConnections()
}

// NewTransport returns the transport for kind. An empty kind selects net/http.
func NewTransport(kind string, options ...ClientOption) (Transport, error) {
	switch kind {
	case "", KindNet:
		return NewClient(options...), nil
	case KindFast:
		return NewFastClient(options...), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (expected %s or %s)", kind, KindNet, KindFast)
	}
}
