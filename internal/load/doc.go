// Package load drives a fixed-size batch of HTTP GET requests against a single
// target while bounding how many are in flight at once.
//
// A run is made of three pieces:
//
//   - Dispatcher: admits exactly N work units, never more than C at a time,
//     and waits for every admitted unit before returning.
//   - Aggregator: lock-free success/failure counters updated exactly once per
//     completed unit.
//   - Statistics: throughput figures derived from the final counters and the
//     wall-clock duration of the run.
//
// # Thread Safety
//
// Admission is reserved on a weighted semaphore before a worker goroutine is
// started, so the in-flight bound is exact rather than approximate. Counters
// use atomic operations; the run configuration is read-only.
package load
