package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate validates the run configuration.
//
// Returns nil if valid, or a *ValidationErrors containing every problem found.
// A concurrency above the request count is allowed.
func (c *RunConfig) Validate() error {
	errs := &ValidationErrors{}

	validateURL(c.URL, errs)

	if c.Requests < 1 {
		errs.Add("requests", fmt.Sprintf("must be >= 1, got %d", c.Requests))
	}
	if c.Concurrency < 1 {
		errs.Add("concurrency", fmt.Sprintf("must be >= 1, got %d", c.Concurrency))
	}
	if c.Timeout <= 0 {
		errs.Add("timeout", fmt.Sprintf("must be > 0, got %s", c.Timeout))
	}

	switch c.Transport {
	case "", "net", "fast":
	default:
		errs.Add("transport", fmt.Sprintf("unknown transport %q (expected net or fast)", c.Transport))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateURL(raw string, errs *ValidationErrors) {
	if raw == "" {
		errs.Add("url", "url is required")
		return
	}

	u, err := url.Parse(raw)
	if err != nil {
		errs.Add("url", fmt.Sprintf("invalid url: %v", err))
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		errs.Add("url", fmt.Sprintf("scheme must be http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		errs.Add("url", "host is required")
	}
	if strings.Contains(raw, "{{") {
		errs.Add("url", "url contains unresolved variables")
	}
}
