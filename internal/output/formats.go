package output

import (
	"fmt"
	"strings"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or yaml)", s)
	}
}

// SummaryData is the structured form of a run summary used by the JSON and
// YAML formats.
type SummaryData struct {
	RunID             string       `json:"runId,omitempty" yaml:"runId,omitempty"`
	URL               string       `json:"url" yaml:"url"`
	Requested         int          `json:"requested" yaml:"requested"`
	TotalRequests     int          `json:"totalRequests" yaml:"totalRequests"`
	Concurrency       int          `json:"concurrency" yaml:"concurrency"`
	PeakInFlight      int          `json:"peakInFlight" yaml:"peakInFlight"`
	Success           int64        `json:"success" yaml:"success"`
	Failure           int64        `json:"failure" yaml:"failure"`
	Failures          FailuresData `json:"failures" yaml:"failures"`
	ElapsedSeconds    float64      `json:"elapsedSeconds" yaml:"elapsedSeconds"`
	RequestsPerSecond float64      `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	AvgRequestMillis  float64      `json:"avgRequestMs" yaml:"avgRequestMs"`
	Interrupted       bool         `json:"interrupted" yaml:"interrupted"`
}

// FailuresData splits the failure count by cause.
type FailuresData struct {
	Status    int64 `json:"status" yaml:"status"`
	Timeout   int64 `json:"timeout" yaml:"timeout"`
	Transport int64 `json:"transport" yaml:"transport"`
}
