package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the summary
type ColorScheme struct {
	Label     *color.Color
	Value     *color.Color
	Success   *color.Color
	Failure   *color.Color
	Warning   *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Label:     color.New(color.FgCyan),
		Value:     color.New(color.FgWhite, color.Bold),
		Success:   color.New(color.FgGreen, color.Bold),
		Failure:   color.New(color.FgRed, color.Bold),
		Warning:   color.New(color.FgYellow, color.Bold),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.DisableColor()
	}
	return scheme
}

// forcedColorScheme returns a color scheme that emits escape codes even when
// the process stdout is not a terminal.
func forcedColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range scheme.all() {
		c.EnableColor()
	}
	return scheme
}

func (s *ColorScheme) all() []*color.Color {
	return []*color.Color{s.Label, s.Value, s.Success, s.Failure, s.Warning, s.Highlight}
}
