package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/volley/internal/target"
)

func newServeCmd() *cobra.Command {
	var cfg target.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local target server to aim volley at",
		Long: `Serve starts a small HTTP server answering GET /index.php and GET /health.
Failures and latency can be injected to see how they show up in a run.

  volley serve --addr :8080 --fail-rate 0.05 --delay 20ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Starting target server on %s\n", cfg.Addr)
			fmt.Fprintln(out, "Endpoints:")
			fmt.Fprintln(out, "  - GET /index.php")
			fmt.Fprintln(out, "  - GET /health")

			return target.ListenAndServe(ctx, cfg, logrus.NewEntry(logger))
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", target.DefaultAddr, "Listen address")
	f.Float64Var(&cfg.FailRate, "fail-rate", 0, "Fraction of requests answered with 500 (0..1)")
	f.IntVar(&cfg.FailEvery, "fail-every", 0, "Answer every n-th request with 500")
	f.DurationVar(&cfg.Delay, "delay", 0, "Delay added to every /index.php response")

	return cmd
}
