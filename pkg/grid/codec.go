package grid

import (
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/geoascii/pkg/errors"
)

// Transparent marks a cell that holds no geometry
const Transparent = ' '

// LineSeparator joins rows in the textual form
const LineSeparator = "\n"

// Grid is an ordered sequence of rows of single-character cells
type Grid [][]rune

// Rows returns the number of rows
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the first row, or zero for an empty grid
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// IsRectangular reports whether every row has the same length
func (g Grid) IsRectangular() bool {
	for _, row := range g {
		if len(row) != g.Cols() {
			return false
		}
	}
	return true
}

// String returns the textual form of the grid
func (g Grid) String() string {
	return Encode(g)
}

// Decode splits text into rows and takes every second character of each row
// as a cell. Malformed spacing is misread rather than rejected. One trailing
// line separator is ignored.
func Decode(text string) Grid {
	if text == "" {
		return Grid{}
	}
	lines := strings.Split(strings.TrimSuffix(text, LineSeparator), LineSeparator)
	g := make(Grid, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		runes := []rune(line)
		row := make([]rune, 0, (len(runes)+1)/2)
		for i := 0; i < len(runes); i += 2 {
			row = append(row, runes[i])
		}
		g = append(g, row)
	}
	return g
}

// Encode joins each row's cells with a single space and the rows with a line
// separator
func Encode(g Grid) string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteString(LineSeparator)
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(cell)
		}
	}
	return b.String()
}

// ValidateChar checks that value is exactly one character and returns it.
// param names the offending argument in the error.
func ValidateChar(param, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, errors.Newf(errors.ErrInvalidChar,
			"invalid %s value `%s' - must be 1 character long", param, value).
			WithDetail("param", param).
			WithDetail("value", value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
