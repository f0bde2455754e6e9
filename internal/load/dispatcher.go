package load

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// ErrInvalidConfig is returned when a run is configured with values that
// would make it meaningless, such as zero requests.
var ErrInvalidConfig = errors.New("invalid run configuration")

// Transport performs a single GET request and returns the response status.
type Transport interface {
	Get(ctx context.Context, url string) (int, error)
}

// Config is the immutable configuration of a run.
type Config struct {
	// URL is the request target
	URL string

	// Requests is the number of work units to issue (N)
	Requests int

	// Concurrency is the maximum number of units in flight (C)
	Concurrency int

	// Timeout bounds each request; zero disables the per-request timeout
	Timeout time.Duration
}

// Validate checks the run preconditions.
func (c Config) Validate() error {
	if c.Requests < 1 {
		return fmt.Errorf("%w: requests must be >= 1, got %d", ErrInvalidConfig, c.Requests)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// Result describes a finished (or interrupted) run.
type Result struct {
	URL          string        `json:"url"`
	Requested    int           `json:"requested"`
	Completed    int           `json:"completed"`
	Concurrency  int           `json:"concurrency"`
	PeakInFlight int           `json:"peakInFlight"`
	Counts       Counts        `json:"counts"`
	Elapsed      time.Duration `json:"elapsed"`
	Interrupted  bool          `json:"interrupted"`
}

// Statistics derives the summary figures for the result.
func (r *Result) Statistics() Statistics {
	return NewStatistics(r.Counts, r.Completed, r.Elapsed)
}

// ProgressFunc is called after each completed work unit.
type ProgressFunc func(completed, total int)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for run and per-request diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithProgress registers a callback invoked after each completion.
// It is called concurrently from worker goroutines.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Dispatcher) {
		d.onProgress = fn
	}
}

// Dispatcher issues exactly Config.Requests work units against the target,
// never allowing more than Config.Concurrency to be unresolved at once.
//
// Admission is reserved on a weighted semaphore before each worker goroutine
// starts, and released only after its outcome has been recorded. Run returns
// once every admitted unit has completed.
type Dispatcher struct {
	config     Config
	transport  Transport
	log        *logrus.Entry
	onProgress ProgressFunc

	running atomic.Bool
}

// NewDispatcher validates the configuration and creates a dispatcher.
func NewDispatcher(config Config, transport Transport, opts ...Option) (*Dispatcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, fmt.Errorf("%w: transport is required", ErrInvalidConfig)
	}

	d := &Dispatcher{
		config:    config,
		transport: transport,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Config returns the run configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Run executes the run and blocks until every admitted unit has finished.
//
// Per-request failures never abort the run. If ctx is cancelled, admission
// stops and the partial result is returned together with the context error.
// Units already in flight are not cut short: their requests run under the
// per-request timeout only and are awaited before Run returns.
func (d *Dispatcher) Run(ctx context.Context) (*Result, error) {
	if err := d.config.Validate(); err != nil {
		return nil, err
	}
	if !d.running.CompareAndSwap(false, true) {
		return nil, errors.New("dispatcher is already running")
	}
	defer d.running.Store(false)

	var (
		n         = d.config.Requests
		sem       = semaphore.NewWeighted(int64(d.config.Concurrency))
		agg       = NewAggregator()
		gauge     inFlightGauge
		completed atomic.Int64
		wg        sync.WaitGroup
		runErr    error
	)

	d.log.WithFields(logrus.Fields{
		"requests":    n,
		"concurrency": d.config.Concurrency,
		"timeout":     d.config.Timeout,
	}).Info("starting run")

	start := time.Now()

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		// Reserve the slot before the worker exists.
		if err := sem.Acquire(ctx, 1); err != nil {
			runErr = err
			break
		}
		gauge.enter()

		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			defer sem.Release(1)
			defer gauge.leave()

			outcome := d.attempt(ctx)
			agg.Record(outcome)
			if !outcome.Success {
				d.logFailure(seq, outcome)
			}

			done := int(completed.Add(1))
			if d.onProgress != nil {
				d.onProgress(done, n)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	result := &Result{
		URL:          d.config.URL,
		Requested:    n,
		Completed:    int(completed.Load()),
		Concurrency:  d.config.Concurrency,
		PeakInFlight: gauge.peakValue(),
		Counts:       agg.Snapshot(),
		Elapsed:      elapsed,
		Interrupted:  runErr != nil,
	}

	entry := d.log.WithFields(logrus.Fields{
		"completed": result.Completed,
		"success":   result.Counts.Success,
		"failure":   result.Counts.Failure,
		"elapsed":   elapsed,
		"peak":      result.PeakInFlight,
	})
	if runErr != nil {
		entry.WithError(runErr).Warn("run interrupted")
		return result, runErr
	}
	entry.Info("run finished")
	return result, nil
}

// attempt performs one request and classifies it. It never panics and never
// returns an error; every failure is folded into the Outcome.
func (d *Dispatcher) attempt(ctx context.Context) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Failed(CauseTransport, 0, fmt.Errorf("transport panic: %v", r))
		}
	}()

	// Admitted units run to completion even if the run is cancelled.
	reqCtx := context.WithoutCancel(ctx)
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	status, err := d.transport.Get(reqCtx, d.config.URL)
	return Classify(status, err)
}

func (d *Dispatcher) logFailure(seq int, o Outcome) {
	entry := d.log.WithFields(logrus.Fields{
		"seq":   seq,
		"cause": o.Cause.String(),
	})
	if o.StatusCode != 0 {
		entry = entry.WithField("status", o.StatusCode)
	}
	if o.Err != nil {
		entry = entry.WithError(o.Err)
	}
	entry.Debug("request failed")
}

// inFlightGauge tracks the current and peak number of active units.
type inFlightGauge struct {
	current atomic.Int64
	peak    atomic.Int64
}

func (g *inFlightGauge) enter() {
	n := g.current.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (g *inFlightGauge) leave() {
	g.current.Add(-1)
}

func (g *inFlightGauge) peakValue() int {
	return int(g.peak.Load())
}
