package http

import (
	"context"
	"errors"

	"github.com/valyala/fasthttp"
)

// IsTimeout reports whether err came from a request running out of time,
// whichever transport produced it.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, fasthttp.ErrTimeout) ||
		errors.Is(err, fasthttp.ErrDialTimeout) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
