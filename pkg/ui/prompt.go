package ui

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/pterm/pterm"
)

// PromptMessage is shown between paginated features
const PromptMessage = "Press enter for next feature or 'q + enter' to exit"

// Prompter decides whether pagination continues
type Prompter interface {
	// Next blocks until the user answers. It returns false to stop.
	Next() (bool, error)
}

// LinePrompter reads one line per answer. "q" or end of input stops.
type LinePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	styled bool
}

// NewLinePrompter creates a prompter reading from in and writing the
// message to out
func NewLinePrompter(in io.Reader, out io.Writer, f Format) *LinePrompter {
	return &LinePrompter{
		in:     bufio.NewReader(in),
		out:    out,
		styled: Resolve(f, out) == FormatTerminal,
	}
}

// Next prints the message and waits for a line
func (p *LinePrompter) Next() (bool, error) {
	msg := PromptMessage
	if p.styled {
		msg = pterm.FgGray.Sprint(msg)
	}
	pterm.Fprint(p.out, msg+" ")

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.TrimSpace(line)
	if err == io.EOF && answer == "" {
		logger := logging.GetLogger("ui")
		logger.Debug().Msg("prompt input closed")
		return false, nil
	}
	return !strings.EqualFold(answer, "q"), nil
}

// NoPrompt never waits
type NoPrompt struct{}

// Next always continues
func (NoPrompt) Next() (bool, error) { return true, nil }

// ShouldPrompt reports whether pagination may stop to ask. Prompts are
// skipped when disabled, when output goes to a file or when stdin is not
// interactive.
func ShouldPrompt(enabled bool, outfile string, in *os.File) bool {
	if !enabled || outfile != "" {
		return false
	}
	return IsTerminal(in)
}
