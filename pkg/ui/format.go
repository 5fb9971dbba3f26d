package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks terminal or text from the output's capabilities
	FormatAuto Format = iota
	// FormatTerminal keeps ANSI styling
	FormatTerminal
	// FormatText strips every escape sequence
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
			WithDetail("format", s)
	}
}

// FromColorMode maps the configured color mode to a format
func FromColorMode(mode config.ColorMode) Format {
	switch mode {
	case config.ColorAlways:
		return FormatTerminal
	case config.ColorNever:
		return FormatText
	default:
		return FormatAuto
	}
}

// DetectFormat determines the appropriate output format based on environment and terminal capabilities
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !IsTerminal(output) {
		return FormatText
	}

	if termenv.NewOutput(output).Profile == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for w. Writers that are
// not files never receive styling unless asked for explicitly.
func Resolve(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
