package perf

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/volley/internal/config"
	vhttp "github.com/wesleyorama2/volley/internal/http"
	"github.com/wesleyorama2/volley/internal/load"
)

// Config is the configuration of a single run.
type Config = config.RunConfig

// Result describes a finished or interrupted run.
type Result = load.Result

// Statistics are the summary figures derived from a Result.
type Statistics = load.Statistics

// ProgressFunc is called after each completed request.
type ProgressFunc = load.ProgressFunc

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML or JSON configuration file.
func LoadConfig(path string) (*Config, error) {
	return config.LoadConfig(path)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(log *logrus.Entry) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithProgress registers a callback invoked after every completed request.
// It is called concurrently.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// Runner provides a high-level API for running load tests.
//
//	runner := perf.NewRunner(cfg)
//	result, _ := runner.Run(context.Background())
type Runner struct {
	config     *Config
	log        *logrus.Entry
	onProgress ProgressFunc
}

// NewRunner creates a new runner with the given configuration.
func NewRunner(cfg *Config, opts ...Option) *Runner {
	r := &Runner{
		config: cfg,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates the configuration, builds the transport it names and
// executes the run.
//
// A non-nil Result is returned whenever requests were admitted, even if the
// context was cancelled part way.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.config == nil {
		return nil, fmt.Errorf("%w: config is required", load.ErrInvalidConfig)
	}
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	transport, err := r.newTransport()
	if err != nil {
		return nil, err
	}
	defer transport.CloseIdleConnections()

	dispatcher, err := load.NewDispatcher(r.loadConfig(), transport,
		load.WithLogger(r.log.WithField("transport", r.transportKind())),
		load.WithProgress(r.onProgress),
	)
	if err != nil {
		return nil, err
	}

	return dispatcher.Run(ctx)
}

func (r *Runner) loadConfig() load.Config {
	return load.Config{
		URL:         r.config.URL,
		Requests:    r.config.Requests,
		Concurrency: r.config.Concurrency,
		Timeout:     r.config.Timeout.GetDuration(config.DefaultTimeout),
	}
}

func (r *Runner) transportKind() string {
	if r.config.Transport == "" {
		return vhttp.KindNet
	}
	return r.config.Transport
}

func (r *Runner) newTransport() (vhttp.Transport, error) {
	cfg := r.config

	options := []vhttp.ClientOption{
		vhttp.WithTimeout(cfg.Timeout.GetDuration(config.DefaultTimeout)),
		vhttp.WithMaxConnsPerHost(cfg.Concurrency),
		vhttp.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
	}
	if cfg.UserAgent != "" {
		options = append(options, vhttp.WithUserAgent(cfg.UserAgent))
	}
	if cfg.DNSCache {
		options = append(options, vhttp.WithDNSCache(vhttp.NewResolver(r.log)))
	}

	return vhttp.NewTransport(r.transportKind(), options...)
}
