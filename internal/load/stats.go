package load

import "time"

// Statistics are the summary figures of a finished run.
//
// They are derived purely from the request total and the elapsed wall-clock
// time. AvgPerRequest is elapsed/total, a throughput-based approximation and
// not a measured per-request latency.
type Statistics struct {
	Elapsed           time.Duration `json:"elapsed"`
	TotalRequests     int           `json:"totalRequests"`
	Success           int64         `json:"success"`
	Failure           int64         `json:"failure"`
	RequestsPerSecond float64       `json:"requestsPerSecond"`
	AvgPerRequest     time.Duration `json:"avgPerRequest"`
}

// NewStatistics computes run statistics. A zero total or zero elapsed time
// yields zero rates.
func NewStatistics(counts Counts, total int, elapsed time.Duration) Statistics {
	s := Statistics{
		Elapsed:       elapsed,
		TotalRequests: total,
		Success:       counts.Success,
		Failure:       counts.Failure,
	}

	if total <= 0 || elapsed <= 0 {
		return s
	}

	s.RequestsPerSecond = float64(total) / elapsed.Seconds()
	s.AvgPerRequest = elapsed / time.Duration(total)
	return s
}

// ElapsedSeconds returns the elapsed time in seconds.
func (s Statistics) ElapsedSeconds() float64 {
	return s.Elapsed.Seconds()
}

// AvgPerRequestMillis returns the average time per request in milliseconds.
func (s Statistics) AvgPerRequestMillis() float64 {
	return float64(s.AvgPerRequest) / float64(time.Millisecond)
}
