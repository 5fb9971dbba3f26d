// Package style decorates rendered character grids with ANSI colors or emoji.
//
// Color styling keeps every character in place so the output decodes back to
// the same grid once the escape sequences are stripped. Emoji styling replaces
// the character and is meant for display only.
package style

import (
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/charmbracelet/x/ansi"
)

// Style applies m to every cell of rendered. Unmapped characters pass
// through as the character followed by a space. The output has exactly as
// many rows as the input.
func Style(rendered string, m Map) string {
	g := grid.Decode(rendered)
	if len(g) == 0 {
		return ""
	}

	logger := logging.GetLogger("style")
	logger.Debug().
		Int("rows", g.Rows()).
		Int("styles", len(m)).
		Msg("styling grid")

	rows := make([]string, len(g))
	var b strings.Builder
	for i, row := range g {
		b.Reset()
		for _, ch := range row {
			if tok, ok := m[ch]; ok {
				b.WriteString(tok.Apply(ch))
				continue
			}
			b.WriteRune(ch)
			b.WriteByte(' ')
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, grid.LineSeparator)
}

// Strip removes escape sequences from styled output, leaving text that
// decodes back to the original grid when only colors were applied.
func Strip(styled string) string {
	return ansi.Strip(styled)
}

// Assignment is one layer's character and optional style name
type Assignment struct {
	Char  rune
	Style string
}

// CharMap is the per-layer assignment list, in layer order
type CharMap []Assignment

// Chars returns just the characters of the assignment list
func (c CharMap) Chars() []rune {
	out := make([]rune, len(c))
	for i, a := range c {
		out[i] = a.Char
	}
	return out
}

// StyleMap converts the styled assignments into a Map
func (c CharMap) StyleMap() (Map, error) {
	m := make(Map, len(c))
	for _, a := range c {
		if a.Style == "" {
			continue
		}
		tok, err := ParseToken(a.Style)
		if err != nil {
			return nil, err
		}
		m[a.Char] = tok
	}
	return m, nil
}

// AutoCharMap picks characters and colors for n layers. A single layer gets
// an unstyled '+'; several layers walk the ramp with their default colors.
func AutoCharMap(n int) (CharMap, error) {
	switch {
	case n <= 0:
		return CharMap{}, nil
	case n == 1:
		return CharMap{{Char: '+'}}, nil
	case n > PaletteSize():
		return nil, errors.Newf(errors.ErrPaletteExhausted,
			"can only auto-generate styles for up to %d layers, got %d", PaletteSize(), n).
			WithDetail("layers", n)
	}

	ramp := []rune(DefaultCharRamp)
	out := make(CharMap, n)
	for i := 0; i < n; i++ {
		color, _ := DefaultCharColor(ramp[i])
		out[i] = Assignment{Char: ramp[i], Style: color}
	}
	return out, nil
}
