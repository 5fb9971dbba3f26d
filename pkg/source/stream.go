package source

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// StreamReader decodes concatenated GeoJSON values from a reader. Feature
// collections are unrolled into their features and bare geometries are
// wrapped in features. It can be read only once.
type StreamReader struct {
	dec     *json.Decoder
	pending []*geojson.Feature
	n       int
}

// NewStreamReader returns a single-pass geom.Stream over r
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{dec: json.NewDecoder(r)}
}

// Next returns the next feature or io.EOF
func (s *StreamReader) Next() (any, error) {
	for len(s.pending) == 0 {
		var raw json.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, errors.Wrapf(err, errors.ErrSourceParse, "invalid JSON in value %d", s.n).
				WithDetail("value", s.n)
		}
		s.n++

		features, _, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		s.pending = features
	}

	f := s.pending[0]
	s.pending = s.pending[1:]
	return f, nil
}

// FilterStream yields only the items of s whose geometry intersects bbox
func FilterStream(s geom.Stream, bbox geom.BBox) geom.Stream {
	return &filterStream{src: s, bound: bbox.Bound()}
}

type filterStream struct {
	src   geom.Stream
	bound orb.Bound
}

func (f *filterStream) Next() (any, error) {
	for {
		v, err := f.src.Next()
		if err != nil {
			return nil, err
		}
		g, err := geom.GeometryOf(v)
		if err != nil {
			return nil, err
		}
		if g != nil && f.bound.Intersects(g.Bound()) {
			return v, nil
		}
	}
}

// ReadLayer drains r into a layer held in memory
func ReadLayer(name string, r io.Reader) (*Layer, error) {
	s := NewStreamReader(r)
	var features []*geojson.Feature
	for {
		v, err := s.Next()
		if err == io.EOF {
			return NewLayer(name, features), nil
		}
		if err != nil {
			return nil, err
		}
		features = append(features, v.(*geojson.Feature))
	}
}
