package grid

import (
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/logging"
)

// Stack overlays rendered layers, first on the bottom and last on top. Space
// cells are transparent; a cell transparent in every layer becomes fill.
// All layers must share the same dimensions.
func Stack(layers []string, fill string) (string, error) {
	fillChar, err := ValidateChar("fill", fill)
	if err != nil {
		return "", err
	}

	grids := make([]Grid, len(layers))
	for i, layer := range layers {
		grids[i] = Decode(layer)
	}

	out, err := StackGrids(grids, fillChar)
	if err != nil {
		return "", err
	}
	return Encode(out), nil
}

// StackGrids is Stack on decoded grids
func StackGrids(grids []Grid, fill rune) (Grid, error) {
	logger := logging.GetLogger("grid.stack")
	if len(grids) == 0 {
		return Grid{}, nil
	}
	if err := checkDimensions(grids); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("layers", len(grids)).
		Int("rows", grids[0].Rows()).
		Int("cols", grids[0].Cols()).
		Msg("Stacking layers")

	out := make(Grid, grids[0].Rows())
	for r := range out {
		row := make([]rune, len(grids[0][r]))
		for c := range row {
			row[c] = fill
			for _, g := range grids {
				if v := g[r][c]; v != Transparent {
					row[c] = v
				}
			}
		}
		out[r] = row
	}
	return out, nil
}

func checkDimensions(grids []Grid) error {
	rows := grids[0].Rows()
	for i, g := range grids {
		if g.Rows() != rows {
			return errors.Newf(errors.ErrDimensions,
				"input layers have heterogeneous dimensions: layer %d has %d rows, expected %d", i, g.Rows(), rows).
				WithDetail("layer", i)
		}
	}
	for r := 0; r < rows; r++ {
		cols := len(grids[0][r])
		for i, g := range grids {
			if len(g[r]) != cols {
				return errors.Newf(errors.ErrDimensions,
					"input layers have heterogeneous dimensions: layer %d row %d has %d columns, expected %d",
					i, r, len(g[r]), cols).
					WithDetail("layer", i).
					WithDetail("row", r)
			}
		}
	}
	return nil
}
