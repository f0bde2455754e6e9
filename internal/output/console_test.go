package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/volley/internal/load"
)

func sampleResult() *load.Result {
	return &load.Result{
		URL:          "http://localhost:8080/index.php",
		Requested:    1000,
		Completed:    1000,
		Concurrency:  50,
		PeakInFlight: 50,
		Counts: load.Counts{
			Success: 990,
			Failure: 10,
			Failures: load.FailureBreakdown{
				Status:    6,
				Timeout:   3,
				Transport: 1,
			},
		},
		Elapsed: 4 * time.Second,
	}
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf, NoColor: true})

	require.NoError(t, p.Print(Summary{RunID: "abc", Result: sampleResult()}))

	want := strings.Join([]string{
		"Total requests: 1000",
		"Success: 990, Fail: 10",
		"Time elapsed: 4.00 s",
		"Requests per second: 250.00",
		"Average time per request: 4.00 ms",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrinter_TextRounding(t *testing.T) {
	r := &load.Result{
		Requested: 3,
		Completed: 3,
		Counts:    load.Counts{Success: 3},
		Elapsed:   1234567890 * time.Nanosecond,
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(PrinterConfig{Writer: &buf, NoColor: true}).Print(Summary{Result: r}))

	out := buf.String()
	assert.Contains(t, out, "Time elapsed: 1.23 s")
	assert.Contains(t, out, "Requests per second: 2.43")
	assert.Contains(t, out, "Average time per request: 411.52 ms")
}

func TestPrinter_TextVerbose(t *testing.T) {
	r := sampleResult()
	r.Interrupted = true
	r.Completed = 400

	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf, NoColor: true, Verbose: true})
	require.NoError(t, p.Print(Summary{RunID: "run-123", Result: r}))

	out := buf.String()
	assert.Contains(t, out, "Run ID:      run-123")
	assert.Contains(t, out, "Target:      http://localhost:8080/index.php")
	assert.Contains(t, out, "Concurrency: 50 (peak in flight: 50)")
	assert.Contains(t, out, "Failures:    status=6 timeout=3 transport=1")
	assert.Contains(t, out, "completed 400 of 1000 requests")
	assert.Contains(t, out, "Total requests: 400")
}

func TestPrinter_ForcedColors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf, ForceColors: true})
	require.NoError(t, p.Print(Summary{Result: sampleResult()}))

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestPrinter_NoColorWinsOverForce(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf, ForceColors: true, NoColor: true})
	require.NoError(t, p.Print(Summary{Result: sampleResult()}))

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_NonTerminalHasNoColors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf})
	require.NoError(t, p.Print(Summary{Result: sampleResult()}))

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf, Format: FormatJSON})
	require.NoError(t, p.Print(Summary{RunID: "run-1", Result: sampleResult()}))

	out := buf.String()
	require.True(t, gjson.Valid(out), "invalid JSON: %s", out)

	assert.Equal(t, "run-1", gjson.Get(out, "runId").String())
	assert.Equal(t, int64(1000), gjson.Get(out, "totalRequests").Int())
	assert.Equal(t, int64(990), gjson.Get(out, "success").Int())
	assert.Equal(t, int64(10), gjson.Get(out, "failure").Int())
	assert.Equal(t, int64(3), gjson.Get(out, "failures.timeout").Int())
	assert.Equal(t, 250.0, gjson.Get(out, "requestsPerSecond").Float())
	assert.Equal(t, 4.0, gjson.Get(out, "avgRequestMs").Float())
	assert.Equal(t, 4.0, gjson.Get(out, "elapsedSeconds").Float())
	assert.False(t, gjson.Get(out, "interrupted").Bool())
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(PrinterConfig{Writer: &buf, Format: FormatYAML})
	require.NoError(t, p.Print(Summary{Result: sampleResult()}))

	var data SummaryData
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, 1000, data.TotalRequests)
	assert.Equal(t, int64(990), data.Success)
	assert.Equal(t, int64(6), data.Failures.Status)
	assert.Empty(t, data.RunID)
}

func TestPrinter_NilResult(t *testing.T) {
	p := NewPrinter(PrinterConfig{Writer: &bytes.Buffer{}})
	assert.Error(t, p.Print(Summary{}))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"junit", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorSchemes(t *testing.T) {
	for _, c := range DefaultColorScheme().all() {
		assert.NotNil(t, c)
	}
	for _, c := range NoColorScheme().all() {
		assert.Equal(t, "x", c.Sprint("x"))
	}
}
