package load

import "sync/atomic"

// Aggregator accumulates outcomes into success and failure counters.
//
// Record is safe for concurrent use. Snapshot may be called at any time but
// only reflects final values once every writer has finished, i.e. after the
// Dispatcher's completion barrier.
type Aggregator struct {
	success atomic.Int64
	failure atomic.Int64

	// Failure breakdown
	status    atomic.Int64
	timeout   atomic.Int64
	transport atomic.Int64
}

// Counts is a point-in-time copy of the aggregate counters.
type Counts struct {
	Success  int64            `json:"success"`
	Failure  int64            `json:"failure"`
	Failures FailureBreakdown `json:"failures"`
}

// FailureBreakdown splits the failure count by cause.
type FailureBreakdown struct {
	Status    int64 `json:"status"`
	Timeout   int64 `json:"timeout"`
	Transport int64 `json:"transport"`
}

// Total returns the number of recorded outcomes.
func (c Counts) Total() int64 {
	return c.Success + c.Failure
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record folds one outcome into the counters.
func (a *Aggregator) Record(o Outcome) {
	if o.Success {
		a.success.Add(1)
		return
	}

	switch o.Cause {
	case CauseStatus:
		a.status.Add(1)
	case CauseTimeout:
		a.timeout.Add(1)
	default:
		a.transport.Add(1)
	}
	a.failure.Add(1)
}

// Snapshot returns the current counters.
func (a *Aggregator) Snapshot() Counts {
	return Counts{
		Success: a.success.Load(),
		Failure: a.failure.Load(),
		Failures: FailureBreakdown{
			Status:    a.status.Load(),
			Timeout:   a.timeout.Load(),
			Transport: a.transport.Load(),
		},
	}
}
