package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/paulmach/orb"
)

// BBox is an axis-aligned bounding box in source coordinate units
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// FromBound converts an orb bound
func FromBound(b orb.Bound) BBox {
	return BBox{MinX: b.Min.X(), MinY: b.Min.Y(), MaxX: b.Max.X(), MaxY: b.Max.Y()}
}

// Bound converts the box to an orb bound
func (b BBox) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
}

// Width is the x extent
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height is the y extent
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Validate rejects inverted boxes
func (b BBox) Validate() error {
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return errors.Newf(errors.ErrInvalidBBox,
			"invalid bbox %s - min values must not exceed max values", b).
			WithDetail("bbox", b)
	}
	return nil
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// String renders the box as a (x_min, y_min, x_max, y_max) tuple
func (b BBox) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// UnionAll merges boxes in order. It returns false when boxes is empty.
func UnionAll(boxes []BBox) (BBox, bool) {
	if len(boxes) == 0 {
		return BBox{}, false
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out, true
}

// ParseBBox parses "x_min y_min x_max y_max". Commas are accepted as separators.
func ParseBBox(s string) (BBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 4 {
		return BBox{}, errors.Newf(errors.ErrInvalidBBox,
			"invalid bbox `%s' - must be \"x_min y_min x_max y_max\"", s)
	}

	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return BBox{}, errors.Wrapf(err, errors.ErrInvalidBBox, "invalid bbox coordinate `%s'", f)
		}
		v[i] = n
	}

	b := BBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	return b, b.Validate()
}
