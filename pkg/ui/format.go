// Package ui holds output format and colour selection shared by the
// renderers and the CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format of a plan
type Format int

const (
	// FormatText renders one operation per line
	FormatText Format = iota
	// FormatJSON renders machine-readable JSON output
	FormatJSON
	// FormatYAML renders machine-readable YAML output
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "plain", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", s)
	}
}

// ColorMode selects when styled output is produced
type ColorMode int

const (
	// ColorAuto colours output on capable terminals only
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses auto, always or never
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on", "true":
		return ColorAlways, nil
	case "never", "off", "false":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode: %s", s)
	}
}

// UseColor decides whether output written to f should be styled
func UseColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	// Check if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check if we're being piped or redirected
	if !IsInteractive(f) {
		return false
	}

	// Check terminal color support
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
