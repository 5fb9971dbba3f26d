package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// Affine maps pixel (col, row) to world (x, y):
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// FromGDAL builds a transform from a GDAL geotransform
// (x origin, pixel width, row rotation, y origin, column rotation, pixel height)
func FromGDAL(c, a, b, f, d, e float64) Affine {
	return Affine{A: a, B: b, C: c, D: d, E: e, F: f}
}

// NorthUp is the transform for a north-up grid whose top-left corner is at
// (xMin, yMax) and whose cells are size units square
func NorthUp(xMin, yMax, size float64) Affine {
	return FromGDAL(xMin, size, 0, yMax, 0, -size)
}

// Apply maps fractional pixel coordinates to world coordinates
func (t Affine) Apply(col, row float64) orb.Point {
	return orb.Point{
		t.A*col + t.B*row + t.C,
		t.D*col + t.E*row + t.F,
	}
}

// Invert maps world coordinates to fractional pixel coordinates. It returns
// false for a singular transform.
func (t Affine) Invert(p orb.Point) (col, row float64, ok bool) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		return 0, 0, false
	}
	dx, dy := p.X()-t.C, p.Y()-t.F
	col = (t.E*dx - t.B*dy) / det
	row = (-t.D*dx + t.A*dy) / det
	return col, row, true
}

// CellBound is the world-space bound of a cell
func (t Affine) CellBound(row, col int) orb.Bound {
	b := t.Apply(float64(col), float64(row)).Bound()
	b = b.Extend(t.Apply(float64(col+1), float64(row)))
	b = b.Extend(t.Apply(float64(col), float64(row+1)))
	return b.Extend(t.Apply(float64(col+1), float64(row+1)))
}

// CellCenter is the world-space center of a cell
func (t Affine) CellCenter(row, col int) orb.Point {
	return t.Apply(float64(col)+0.5, float64(row)+0.5)
}

// window is an inclusive range of cells
type window struct {
	row0, row1, col0, col1 int
}

func (w window) empty() bool {
	return w.row0 > w.row1 || w.col0 > w.col1
}

// windowFor returns the cells that can intersect bound, clipped to the grid
func (t Affine) windowFor(b orb.Bound, rows, cols int) window {
	full := window{0, rows - 1, 0, cols - 1}
	corners := []orb.Point{b.Min, b.Max, {b.Min.X(), b.Max.Y()}, {b.Max.X(), b.Min.Y()}}

	minC, minR := math.Inf(1), math.Inf(1)
	maxC, maxR := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		c, r, ok := t.Invert(p)
		if !ok {
			return full
		}
		minC, maxC = math.Min(minC, c), math.Max(maxC, c)
		minR, maxR = math.Min(minR, r), math.Max(maxR, r)
	}

	return window{
		row0: max(0, int(math.Floor(minR))),
		row1: min(rows-1, int(math.Floor(maxR))),
		col0: max(0, int(math.Floor(minC))),
		col1: min(cols-1, int(math.Floor(maxC))),
	}
}
