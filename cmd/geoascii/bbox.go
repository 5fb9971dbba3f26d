package geoascii

import (
	"os"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/source"
)

// parseBBoxFlag accepts a datasource, whose overall extent is used, or
// "x_min y_min x_max y_max". An empty value means no bbox.
func parseBBoxFlag(value string) (*geom.BBox, error) {
	if value == "" {
		return nil, nil
	}

	if _, err := os.Stat(value); err == nil {
		ds, err := source.Open(value)
		if err != nil {
			return nil, err
		}
		var boxes []geom.BBox
		for _, l := range ds.Layers() {
			if l.HasExtent() {
				boxes = append(boxes, l.Bounds())
			}
		}
		b, ok := geom.UnionAll(boxes)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidBBox, MsgErrBBoxNoExtent, value).
				WithDetail("bbox", value)
		}
		logger := logging.GetLogger("cli")
		logger.Debug().Str("file", value).Stringer("bbox", b).Msg("bbox read from datasource")
		return &b, nil
	}

	b, err := geom.ParseBBox(value)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
