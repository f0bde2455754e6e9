// Package output renders run summaries to the console.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/volley/internal/load"
)

// Summary is everything the printer needs to report a run.
type Summary struct {
	RunID  string
	Result *load.Result
}

// PrinterConfig contains configuration for Printer.
type PrinterConfig struct {
	Writer      io.Writer
	Format      OutputFormat
	Verbose     bool
	NoColor     bool
	ForceColors bool
}

// Printer writes the end-of-run summary.
type Printer struct {
	writer  io.Writer
	format  OutputFormat
	verbose bool
	colors  *ColorScheme
}

// NewPrinter creates a new summary printer. Colors are used only for the text
// format and only when the writer is a terminal, unless forced.
func NewPrinter(config PrinterConfig) *Printer {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.Format == "" {
		config.Format = FormatText
	}

	colors := NoColorScheme()
	if !config.NoColor && (config.ForceColors || (isTerminal(config.Writer) && supportsColors())) {
		colors = forcedColorScheme()
	}

	return &Printer{
		writer:  config.Writer,
		format:  config.Format,
		verbose: config.Verbose,
		colors:  colors,
	}
}

// Print writes the summary in the configured format.
func (p *Printer) Print(s Summary) error {
	if s.Result == nil {
		return fmt.Errorf("no results to report")
	}

	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(summaryData(s))
	case FormatYAML:
		enc := yaml.NewEncoder(p.writer)
		enc.SetIndent(2)
		if err := enc.Encode(summaryData(s)); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(p.writer, p.text(s))
		return err
	}
}

func (p *Printer) text(s Summary) string {
	r := s.Result
	stats := r.Statistics()
	c := p.colors

	var sb strings.Builder

	if p.verbose {
		sb.WriteString(c.Highlight.Sprint("─── Run " + strings.Repeat("─", 40)))
		sb.WriteString("\n")
		if s.RunID != "" {
			fmt.Fprintf(&sb, "%s %s\n", c.Label.Sprint("Run ID:     "), s.RunID)
		}
		fmt.Fprintf(&sb, "%s %s\n", c.Label.Sprint("Target:     "), r.URL)
		fmt.Fprintf(&sb, "%s %d (peak in flight: %d)\n", c.Label.Sprint("Concurrency:"), r.Concurrency, r.PeakInFlight)
		fmt.Fprintf(&sb, "%s status=%d timeout=%d transport=%d\n",
			c.Label.Sprint("Failures:   "),
			r.Counts.Failures.Status, r.Counts.Failures.Timeout, r.Counts.Failures.Transport)
		if r.Interrupted {
			fmt.Fprintf(&sb, "%s %s\n", c.Label.Sprint("Interrupted:"),
				c.Warning.Sprintf("completed %d of %d requests", r.Completed, r.Requested))
		}
		sb.WriteString("\n")
	}

	failColor := c.Success
	if stats.Failure > 0 {
		failColor = c.Failure
	}

	fmt.Fprintf(&sb, "Total requests: %s\n", c.Value.Sprint(stats.TotalRequests))
	fmt.Fprintf(&sb, "Success: %s, Fail: %s\n", c.Success.Sprint(stats.Success), failColor.Sprint(stats.Failure))
	fmt.Fprintf(&sb, "Time elapsed: %s s\n", c.Value.Sprintf("%.2f", stats.ElapsedSeconds()))
	fmt.Fprintf(&sb, "Requests per second: %s\n", c.Value.Sprintf("%.2f", stats.RequestsPerSecond))
	fmt.Fprintf(&sb, "Average time per request: %s ms\n", c.Value.Sprintf("%.2f", stats.AvgPerRequestMillis()))

	return sb.String()
}

func summaryData(s Summary) SummaryData {
	r := s.Result
	stats := r.Statistics()

	return SummaryData{
		RunID:         s.RunID,
		URL:           r.URL,
		Requested:     r.Requested,
		TotalRequests: stats.TotalRequests,
		Concurrency:   r.Concurrency,
		PeakInFlight:  r.PeakInFlight,
		Success:       stats.Success,
		Failure:       stats.Failure,
		Failures: FailuresData{
			Status:    r.Counts.Failures.Status,
			Timeout:   r.Counts.Failures.Timeout,
			Transport: r.Counts.Failures.Transport,
		},
		ElapsedSeconds:    stats.ElapsedSeconds(),
		RequestsPerSecond: stats.RequestsPerSecond,
		AvgRequestMillis:  stats.AvgPerRequestMillis(),
		Interrupted:       r.Interrupted,
	}
}
