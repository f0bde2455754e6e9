package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/volley/internal/config"
	"github.com/wesleyorama2/volley/internal/output"
	"github.com/wesleyorama2/volley/perf"
)

type runOptions struct {
	configFile  string
	url         string
	requests    int
	concurrency int
	timeout     time.Duration
	transport   string
	dnsCache    bool
	insecure    bool
	userAgent   string
	format      string
	noColor     bool
}

func newRunCmd() *cobra.Command {
	return newRunCommand(&runOptions{})
}

// newRunCommand binds the run flags to opts.
func newRunCommand(opts *runOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Issue a fixed number of GET requests with bounded concurrency",
		Long: `Run sends --requests GET requests to --url, never keeping more than
--concurrency of them in flight. A request succeeds only when the target
answers 200; any other status, a timeout or a transport error counts as a
failure. Failures never stop the run.

Values from --config are applied first, then any flag set explicitly on the
command line.

  volley run -u http://localhost:8080/index.php -n 1000 -c 50
  volley run --config load.yaml -n 5000 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.url, "url", "u", config.DefaultURL, "Target URL")
	f.IntVarP(&opts.requests, "requests", "n", config.DefaultRequests, "Total number of requests to issue")
	f.IntVarP(&opts.concurrency, "concurrency", "c", config.DefaultConcurrency, "Maximum number of requests in flight")
	f.DurationVarP(&opts.timeout, "timeout", "t", config.DefaultTimeout, "Per-request timeout")
	f.StringVar(&opts.configFile, "config", "", "YAML or JSON configuration file")
	f.StringVar(&opts.transport, "transport", config.DefaultTransport, "HTTP transport: net or fast")
	f.BoolVar(&opts.dnsCache, "dns-cache", false, "Cache DNS lookups for the target host")
	f.BoolVar(&opts.insecure, "insecure", false, "Skip TLS certificate verification")
	f.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header to send")
	f.StringVarP(&opts.format, "format", "o", string(output.FormatText), "Summary format: text, json or yaml")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	return cmd
}

// resolveConfig layers defaults, the optional config file and explicitly
// changed flags, in that order.
func resolveConfig(cmd *cobra.Command, opts *runOptions) (*config.RunConfig, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.LoadConfig(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("url") {
		cfg.URL = config.ResolveVariables(opts.url, cfg.Variables)
	}
	if f.Changed("requests") {
		cfg.Requests = opts.requests
	}
	if f.Changed("concurrency") {
		cfg.Concurrency = opts.concurrency
	}
	if f.Changed("timeout") {
		cfg.Timeout = config.Duration(opts.timeout)
	}
	if f.Changed("transport") {
		cfg.Transport = opts.transport
	}
	if f.Changed("dns-cache") {
		cfg.DNSCache = opts.dnsCache
	}
	if f.Changed("insecure") {
		cfg.InsecureSkipVerify = opts.insecure
	}
	if f.Changed("user-agent") {
		cfg.UserAgent = opts.userAgent
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLoad(cmd *cobra.Command, opts *runOptions) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logrus.NewEntry(logger).WithFields(logrus.Fields{
		"run_id": runID,
		"url":    cfg.URL,
	})

	runner := perf.NewRunner(cfg,
		perf.WithLogger(log),
		perf.WithProgress(progressLogger(log)),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := runner.Run(ctx)
	if result == nil {
		return runErr
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	printer := output.NewPrinter(output.PrinterConfig{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Verbose: verbose,
		NoColor: opts.noColor,
	})
	if err := printer.Print(output.Summary{RunID: runID, Result: result}); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("run interrupted after %d of %d requests: %w", result.Completed, result.Requested, runErr)
	}
	return nil
}

// progressLogger reports completion in steps of ten percent at debug level.
func progressLogger(log *logrus.Entry) perf.ProgressFunc {
	if !log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return nil
	}
	return func(completed, total int) {
		step := total / 10
		if step < 1 {
			step = 1
		}
		if completed%step == 0 || completed == total {
			log.WithFields(logrus.Fields{
				"completed": completed,
				"total":     total,
			}).Debug("progress")
		}
	}
}
