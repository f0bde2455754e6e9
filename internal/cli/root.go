// Package cli wires volley's commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCmd builds the volley command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "volley",
		Short:   "A concurrency-bounded HTTP load generator",
		Version: version,
		Long: `Volley fires a fixed number of HTTP GET requests at a single URL while
keeping at most a fixed number of them in flight, then reports throughput
and success/failure counts.

  volley run -u http://localhost:8080/index.php -n 1000 -c 50
  volley serve --fail-rate 0.1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output and debug logging")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides --verbose)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute runs the root command against os.Args and reports any error on
// stderr. It is called by main.main().
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
