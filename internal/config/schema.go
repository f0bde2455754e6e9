// Package config defines the run configuration for volley and loads it from
// YAML or JSON files.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither a config file nor a flag sets a value.
const (
	DefaultURL         = "http://localhost:8080/index.php"
	DefaultRequests    = 1000
	DefaultConcurrency = 50
	DefaultTimeout     = 10 * time.Second
	DefaultTransport   = "net"
)

// RunConfig is the configuration of a single load run.
//
// Example YAML:
//
//	url: "http://{{host}}/index.php"
//	requests: 1000
//	concurrency: 50
//	timeout: 10s
//	transport: fast
//	variables:
//	  host: localhost:8080
type RunConfig struct {
	// URL is the request target; {{name}} placeholders are resolved
	// from Variables and then from the process environment
	URL string `json:"url" yaml:"url"`

	// Requests is the total number of requests to issue
	Requests int `json:"requests" yaml:"requests"`

	// Concurrency caps the number of requests in flight
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Timeout bounds each request
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// Transport selects the HTTP client: "net" or "fast"
	Transport string `json:"transport,omitempty" yaml:"transport,omitempty"`

	// DNSCache enables the caching resolver
	DNSCache bool `json:"dnsCache,omitempty" yaml:"dnsCache,omitempty"`

	// InsecureSkipVerify skips TLS certificate verification
	InsecureSkipVerify bool `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify,omitempty"`

	// UserAgent overrides the User-Agent header
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`

	// Variables are substituted into URL
	Variables map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Default returns a RunConfig populated with the documented defaults.
func Default() *RunConfig {
	return &RunConfig{
		URL:         DefaultURL,
		Requests:    DefaultRequests,
		Concurrency: DefaultConcurrency,
		Timeout:     Duration(DefaultTimeout),
		Transport:   DefaultTransport,
	}
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	s := value.Value

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
