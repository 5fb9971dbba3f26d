// Package render turns geometry inputs into character grids.
//
// Render draws one input, RenderMultiple and StyleMultiple composite several
// inputs against a shared extent, and Paginate renders a collection one item
// at a time.
package render

import (
	"math"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/raster"
)

const (
	DefaultWidth = 80
	DefaultFill  = " "
	DefaultChar  = "+"
)

// Options controls a single render
type Options struct {
	// Width is the output width in text columns. Each cell takes two.
	Width int
	Fill  string
	Char  string

	// AllTouched burns every cell a polygon touches instead of only the
	// cells whose center it contains.
	AllTouched bool

	// BBox fixes the rendered extent. When nil the input's own bounds are used.
	BBox *geom.BBox
}

// DefaultOptions returns the options used when the caller sets nothing
func DefaultOptions() Options {
	return Options{
		Width: DefaultWidth,
		Fill:  DefaultFill,
		Char:  DefaultChar,
	}
}

func (o Options) validate() (fill, char rune, err error) {
	if fill, err = grid.ValidateChar("fill", o.Fill); err != nil {
		return
	}
	if char, err = grid.ValidateChar("char", o.Char); err != nil {
		return
	}
	if o.Width <= 0 {
		err = errors.Newf(errors.ErrInvalidWidth, "width must be positive, got %d", o.Width).
			WithDetail("width", o.Width)
		return
	}
	if o.BBox != nil {
		err = o.BBox.Validate()
	}
	return
}

// Columns is the number of raster columns for a text width
func Columns(width int) int {
	return (width + 1) / 2
}

// Render draws input as encoded grid text
func Render(input any, opts Options) (string, error) {
	g, err := renderGrid(input, opts)
	if err != nil {
		return "", err
	}
	return grid.Encode(g), nil
}

func renderGrid(input any, opts Options) (grid.Grid, error) {
	logger := logging.GetLogger("render")

	fill, char, err := opts.validate()
	if err != nil {
		return nil, err
	}

	shapes, err := geom.CollectGeometries(input)
	if err != nil {
		return nil, err
	}

	var bbox geom.BBox
	if opts.BBox != nil {
		bbox = *opts.BBox
	} else if bbox, err = geom.BoundsOf(shapes); err != nil {
		return nil, err
	}

	t, rows, cols := layout(bbox, opts.Width)
	logger.Debug().
		Stringer("bbox", bbox).
		Int("rows", rows).
		Int("cols", cols).
		Int("shapes", len(shapes)).
		Bool("all_touched", opts.AllTouched).
		Msg("rasterizing")

	burned := raster.Rasterize(shapes, t, rows, cols, opts.AllTouched)
	return formatGrid(burned, fill, char), nil
}

// layout derives the raster transform and shape for a bbox at a text width
func layout(bbox geom.BBox, width int) (raster.Affine, int, int) {
	bbox = padDegenerate(bbox)
	cols := Columns(width)
	cell := bbox.Width() / float64(cols)
	rows := int(bbox.Height() / cell)
	if rows < 1 {
		rows = 1
	}
	return raster.FromGDAL(bbox.MinX, cell, 0, bbox.MaxY, 0, -cell), rows, cols
}

// padDegenerate widens a zero-width box around its center so the cell size
// is never zero. A vertical extent becomes a square, a point a unit span.
func padDegenerate(b geom.BBox) geom.BBox {
	if b.Width() > 0 {
		return b
	}
	half := math.Max(b.Height(), 1) / 2
	cx := b.MinX
	b.MinX, b.MaxX = cx-half, cx+half
	return b
}
