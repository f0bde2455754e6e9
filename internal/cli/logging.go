package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newLogger builds the process logger from the persistent logging flags.
// Logs go to the command's stderr so they never mix with the summary.
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	logger.SetLevel(logrus.WarnLevel)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if raw, _ := cmd.Flags().GetString("log-level"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
	}

	return logger, nil
}
