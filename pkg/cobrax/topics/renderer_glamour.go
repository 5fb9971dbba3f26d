package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer uses the glamour library for rich markdown rendering
type GlamourRenderer struct {
	Style string // "auto", a standard style name such as "dark" or "notty", or a style file path
	Width int    // word wrap column, 0 keeps glamour's default
}

// NewGlamourRenderer creates a markdown renderer. Plain renderers emit no
// escape sequences.
func NewGlamourRenderer(plain bool) *GlamourRenderer {
	r := &GlamourRenderer{Style: "auto"}
	if plain {
		r.Style = "notty"
	}
	return r
}

// Render converts markdown to terminal output. Other formats, and any
// content glamour fails on, are returned unchanged.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "notty", "dark", "light", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
