package render

import (
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/raster"
)

// Format turns a burned raster into encoded grid text. Background cells
// become fill and burned cells become char. When both are the same
// character the geometry is written last, so it wins.
func Format(burned [][]uint8, fill, char string) (string, error) {
	fillChar, err := grid.ValidateChar("fill", fill)
	if err != nil {
		return "", err
	}
	geomChar, err := grid.ValidateChar("char", char)
	if err != nil {
		return "", err
	}
	return grid.Encode(formatGrid(burned, fillChar, geomChar)), nil
}

func formatGrid(burned [][]uint8, fill, char rune) grid.Grid {
	g := make(grid.Grid, len(burned))
	for r, row := range burned {
		cells := make([]rune, len(row))
		for c := range row {
			cells[c] = fill
		}
		for c, v := range row {
			if v == raster.Burned {
				cells[c] = char
			}
		}
		g[r] = cells
	}
	return g
}
