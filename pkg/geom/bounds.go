package geom

import (
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/logging"
)

// BoundsOf computes the union bounding box of every geometry in the input.
// Empty geometries are ignored.
func BoundsOf(input any) (BBox, error) {
	var (
		out   BBox
		found bool
	)
	for g, err := range Geometries(input) {
		if err != nil {
			return BBox{}, err
		}
		b := g.Bound()
		if b.IsEmpty() {
			continue
		}
		if !found {
			out, found = FromBound(b), true
			continue
		}
		out = out.Union(FromBound(b))
	}
	if !found {
		return BBox{}, errors.New(errors.ErrNoGeometry,
			"cannot compute a bounding box - input contains no geometries")
	}
	return out, nil
}

// MinBBox computes the bounding box of an input and returns it together with a
// version of the input that is safe to traverse afterwards. Inputs that know
// their own extent are returned unchanged. A single-pass Stream is forked
// before the first traversal; the returned input is the unread branch.
//
// An input without geometry fails with NO_GEOMETRY. The returned input is
// still usable in that case.
func MinBBox(input any) (BBox, any, error) {
	logger := logging.GetLogger("geom.bbox")

	if b, ok := input.(Bounded); ok {
		if !b.HasExtent() {
			return BBox{}, input, errors.New(errors.ErrNoGeometry, "input reports no extent")
		}
		bbox := b.Bounds()
		logger.Debug().Stringer("bbox", bbox).Msg("Using bounds reported by input")
		return bbox, input, bbox.Validate()
	}

	scan, out := input, input
	if s, ok := input.(Stream); ok {
		scan, out = Tee(s)
		logger.Debug().Msg("Forked single-pass input to compute bounds")
	}

	bbox, err := BoundsOf(scan)
	if errors.IsErrorCode(err, errors.ErrNoGeometry) {
		return BBox{}, out, err
	}
	if err != nil {
		return BBox{}, nil, err
	}
	logger.Debug().Stringer("bbox", bbox).Msg("Computed bounds from geometries")
	return bbox, out, nil
}
