package style

import (
	"strings"

	"github.com/muesli/termenv"
)

// Reset clears every SGR attribute
const Reset = termenv.CSI + termenv.ResetSeq + "m"

// DefaultCharRamp lists the characters handed out to layers, in order
const DefaultCharRamp = "0123456789*#@0=-%$"

// colorNames is the palette order
var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

var ansiColors = map[string]termenv.ANSIColor{
	"black":   termenv.ANSIBlack,
	"red":     termenv.ANSIRed,
	"green":   termenv.ANSIGreen,
	"yellow":  termenv.ANSIYellow,
	"blue":    termenv.ANSIBlue,
	"magenta": termenv.ANSIMagenta,
	"cyan":    termenv.ANSICyan,
	"white":   termenv.ANSIWhite,
}

// ansiColormap maps a color name to its foreground+background sequence pair
var ansiColormap = buildColormap()

func buildColormap() map[string]string {
	m := make(map[string]string, len(ansiColors))
	for name, c := range ansiColors {
		m[name] = termenv.CSI + c.Sequence(false) + "m" + termenv.CSI + c.Sequence(true) + "m"
	}
	return m
}

// defaultCharColor pairs ramp characters with palette colors
var defaultCharColor = map[rune]string{
	'0': "green",
	'1': "blue",
	'2': "red",
	'3': "yellow",
	'4': "cyan",
	'5': "magenta",
	'6': "white",
	'7': "black",
}

var defaultColorChar = invert(defaultCharColor)

func invert(m map[rune]string) map[string]rune {
	out := make(map[string]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ColorNames returns the palette color names in palette order
func ColorNames() []string {
	out := make([]string, len(colorNames))
	copy(out, colorNames)
	return out
}

// PaletteSize is the number of distinct palette colors
func PaletteSize() int {
	return len(colorNames)
}

// ANSIColormap returns the escape sequence for a palette color name.
// Lookup is case-insensitive.
func ANSIColormap(name string) (string, bool) {
	seq, ok := ansiColormap[strings.ToLower(name)]
	return seq, ok
}

// IsColor reports whether name is a palette color
func IsColor(name string) bool {
	_, ok := ANSIColormap(name)
	return ok
}

// DefaultCharColor returns the palette color paired with a ramp character
func DefaultCharColor(ch rune) (string, bool) {
	c, ok := defaultCharColor[ch]
	return c, ok
}

// DefaultColorChar returns the ramp character paired with a palette color
func DefaultColorChar(color string) (rune, bool) {
	ch, ok := defaultColorChar[strings.ToLower(color)]
	return ch, ok
}

// LastRampChar is the character used for fills styled with an emoji
func LastRampChar() rune {
	r := []rune(DefaultCharRamp)
	return r[len(r)-1]
}
