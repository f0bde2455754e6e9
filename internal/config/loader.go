package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "volley-config.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("invalid config schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// LoadConfig loads a run configuration from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*RunConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return ParseConfig(data, path)
}

// ParseConfig parses configuration data.
//
// The document is checked against the embedded JSON Schema before it is
// decoded. The format is taken from the extension of path and defaults to
// YAML.
func ParseConfig(data []byte, path string) (*RunConfig, error) {
	isJSON := strings.ToLower(filepath.Ext(path)) == ".json"

	doc, err := decodeDocument(data, isJSON)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	config := Default()
	if isJSON {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.URL = ResolveVariables(config.URL, config.Variables)
	return config, nil
}

// decodeDocument decodes data into generic JSON values. YAML documents are
// round-tripped through JSON so the schema sees the same types either way.
func decodeDocument(data []byte, isJSON bool) (interface{}, error) {
	var doc interface{}

	if isJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		return doc, nil
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	converted, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML config: %w", err)
	}
	if err := json.Unmarshal(converted, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert YAML config: %w", err)
	}
	return doc, nil
}

func validateDocument(doc interface{}) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// ResolveVariables replaces {{name}} placeholders in input with values from
// vars, falling back to environment variables. Unresolved placeholders are
// left as-is.
func ResolveVariables(input string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(input, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}

// ParseDurationString parses duration strings like "30s", "5m", "1 minute"
// or a bare number of seconds.
func ParseDurationString(duration string) (time.Duration, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	if d, err := time.ParseDuration(duration); err == nil {
		return d, nil
	}

	var seconds int
	if _, err := fmt.Sscanf(duration, "%d", &seconds); err == nil && fmt.Sprint(seconds) == duration {
		return time.Duration(seconds) * time.Second, nil
	}

	// Longer words first so "seconds" is not turned into "ss".
	normalized := strings.ReplaceAll(strings.ToLower(duration), " ", "")
	replacer := strings.NewReplacer(
		"milliseconds", "ms",
		"millisecond", "ms",
		"seconds", "s",
		"second", "s",
		"minutes", "m",
		"minute", "m",
		"hours", "h",
		"hour", "h",
	)

	d, err := time.ParseDuration(replacer.Replace(normalized))
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s", duration)
	}
	return d, nil
}
