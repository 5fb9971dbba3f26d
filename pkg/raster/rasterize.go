// Package raster burns vector geometries into a two-valued grid.
package raster

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

const (
	// Background marks cells untouched by any geometry
	Background uint8 = 0
	// Burned marks cells covered by a geometry
	Burned uint8 = 1
)

// Rasterize burns shapes into a rows x cols grid.
//
// Areal geometries burn every cell whose center lies inside them, or with
// allTouched every cell they intersect. Lines and points always burn every
// cell they touch.
func Rasterize(shapes []orb.Geometry, t Affine, rows, cols int, allTouched bool) [][]uint8 {
	out := make([][]uint8, rows)
	for r := range out {
		out[r] = make([]uint8, cols)
	}
	if rows <= 0 || cols <= 0 {
		return out
	}

	for _, g := range shapes {
		burn(out, g, t, allTouched)
	}
	return out
}

func burn(out [][]uint8, g orb.Geometry, t Affine, allTouched bool) {
	if g == nil {
		return
	}

	switch g := g.(type) {
	case orb.Collection:
		for _, child := range g {
			burn(out, child, t, allTouched)
		}
	case orb.Bound:
		burn(out, g.ToPolygon(), t, allTouched)
	case orb.Point:
		burnPoint(out, g, t)
	case orb.MultiPoint:
		for _, p := range g {
			burnPoint(out, p, t)
		}
	case orb.Ring:
		burn(out, orb.Polygon{g}, t, allTouched)
	case orb.Polygon, orb.MultiPolygon:
		visit(out, g, t, func(cell orb.Bound, center orb.Point) bool {
			inside := areaContains(g, center)
			if inside || !allTouched {
				return inside
			}
			return boundaryTouches(cell, g)
		})
	case orb.LineString, orb.MultiLineString:
		visit(out, g, t, func(cell orb.Bound, _ orb.Point) bool {
			return clip.Geometry(cell, g) != nil
		})
	}
}

// visit calls test for every cell inside the geometry's bound and burns the
// cells it accepts
func visit(out [][]uint8, g orb.Geometry, t Affine, test func(cell orb.Bound, center orb.Point) bool) {
	bound := g.Bound()
	if bound.IsEmpty() {
		return
	}
	w := t.windowFor(bound, len(out), len(out[0]))
	if w.empty() {
		return
	}
	for r := w.row0; r <= w.row1; r++ {
		for c := w.col0; c <= w.col1; c++ {
			if out[r][c] == Burned {
				continue
			}
			if test(t.CellBound(r, c), t.CellCenter(r, c)) {
				out[r][c] = Burned
			}
		}
	}
}

func burnPoint(out [][]uint8, p orb.Point, t Affine) {
	col, row, ok := t.Invert(p)
	if !ok {
		return
	}
	r, c := int(math.Floor(row)), int(math.Floor(col))
	rows, cols := len(out), len(out[0])

	// points on the far edges of the grid belong to the last cell
	if r == rows && row == float64(rows) {
		r--
	}
	if c == cols && col == float64(cols) {
		c--
	}
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return
	}
	out[r][c] = Burned
}

func areaContains(g orb.Geometry, p orb.Point) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	}
	return false
}

// boundaryTouches reports whether any ring of an areal geometry crosses cell
func boundaryTouches(cell orb.Bound, g orb.Geometry) bool {
	var polys orb.MultiPolygon
	switch g := g.(type) {
	case orb.Polygon:
		polys = orb.MultiPolygon{g}
	case orb.MultiPolygon:
		polys = g
	}
	for _, p := range polys {
		for _, ring := range p {
			if clip.Geometry(cell, orb.LineString(ring)) != nil {
				return true
			}
		}
	}
	return false
}
