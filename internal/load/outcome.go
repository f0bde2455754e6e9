package load

import (
	"context"
	"errors"
	"net/http"
)

// Cause identifies why a work unit failed.
type Cause int

const (
	// CauseNone is the cause of a successful unit.
	CauseNone Cause = iota

	// CauseStatus means a response arrived with a status other than 200.
	CauseStatus

	// CauseTimeout means the request did not finish within its timeout.
	CauseTimeout

	// CauseTransport covers connection errors and anything else raised by
	// the transport.
	CauseTransport
)

// String returns the cause name used in logs and reports.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseStatus:
		return "status"
	case CauseTimeout:
		return "timeout"
	case CauseTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Outcome is the classification of one completed request attempt.
//
// Only Success matters for the aggregate counters. Cause, StatusCode and Err
// are kept for diagnostics.
type Outcome struct {
	Success    bool
	Cause      Cause
	StatusCode int
	Err        error
}

// Succeeded returns a successful outcome for the given status code.
func Succeeded(status int) Outcome {
	return Outcome{Success: true, Cause: CauseNone, StatusCode: status}
}

// Failed returns a failed outcome.
func Failed(cause Cause, status int, err error) Outcome {
	return Outcome{Success: false, Cause: cause, StatusCode: status, Err: err}
}

// Classify turns the result of a transport call into an Outcome.
// A unit succeeds if and only if no error occurred and the status is 200.
func Classify(status int, err error) Outcome {
	switch {
	case err != nil && isTimeout(err):
		return Failed(CauseTimeout, status, err)
	case err != nil:
		return Failed(CauseTransport, status, err)
	case status != http.StatusOK:
		return Failed(CauseStatus, status, nil)
	default:
		return Succeeded(status)
	}
}

// isTimeout reports whether err is a deadline expiry, either from the request
// context or from a net.Error style timeout. Transports whose timeouts are
// plain sentinel errors must wrap them with context.DeadlineExceeded, as
// FastClient does for fasthttp.ErrTimeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
