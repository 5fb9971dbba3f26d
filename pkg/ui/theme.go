package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Adaptive colors for light and dark terminals
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	AccentColor  = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

// Theme holds the styles used for CLI messages. Styles are bound to the
// writer so that text output carries no escape sequences.
type Theme struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Code    lipgloss.Style
	Warning lipgloss.Style
	Accent  lipgloss.Style
}

// NewTheme builds a theme for w in the given format
func NewTheme(w io.Writer, f Format) *Theme {
	r := lipgloss.NewRenderer(w)
	if Resolve(f, w) == FormatText {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Theme{
		Heading: r.NewStyle().Bold(true).Foreground(HeadingColor),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Error:   r.NewStyle().Bold(true).Foreground(ErrorColor),
		Code:    r.NewStyle().Foreground(ErrorColor),
		Warning: r.NewStyle().Foreground(WarningColor),
		Accent:  r.NewStyle().Foreground(AccentColor),
	}
}

// FormatError renders err as "Error [CODE]: message" followed by its
// details, one per line
func (t *Theme) FormatError(err error) string {
	var b strings.Builder
	b.WriteString(t.Error.Render("Error"))
	msg := err.Error()
	var geoErr *errors.GeoError
	if stderrors.As(err, &geoErr) {
		b.WriteString(" " + t.Code.Render("["+string(geoErr.Code)+"]"))
		msg = geoErr.Message
		if geoErr.Wrapped != nil {
			msg += ": " + geoErr.Wrapped.Error()
		}
	}
	b.WriteString(": " + msg)

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n  " + t.Muted.Render(fmt.Sprintf("%s: %v", k, details[k])))
	}
	return b.String()
}

// RenderError writes FormatError(err) and a newline to w
func (t *Theme) RenderError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, t.FormatError(err))
}
