package geom

import (
	"encoding/json"
	"io"
	"iter"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Kind identifies the shape of an input object. It is decided once at the
// boundary so the rest of the pipeline works on plain geometries.
type Kind int

const (
	KindUnknown Kind = iota
	// KindGeometry is a bare geometry
	KindGeometry
	// KindFeature is a feature wrapping a geometry and properties
	KindFeature
	// KindGeoInterface is any value exposing a geometry through GeoInterface
	KindGeoInterface
	// KindCollection is a container of any of the above
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindFeature:
		return "feature"
	case KindGeoInterface:
		return "geo-interface"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// GeoInterface is implemented by domain objects that can describe themselves
// as a geometry
type GeoInterface interface {
	GeoInterface() orb.Geometry
}

// Collection is implemented by containers of features such as an opened layer
type Collection interface {
	Features() []*geojson.Feature
}

// Bounded is implemented by inputs that already know their extent. Bounds is
// only meaningful when HasExtent is true.
type Bounded interface {
	Bounds() BBox
	HasExtent() bool
}

// Stream is a single-pass sequence of input objects. Next returns io.EOF once
// the sequence is exhausted. Use Tee to traverse a stream more than once.
type Stream interface {
	Next() (any, error)
}

// Classify decides which variant an input object is
func Classify(v any) (Kind, error) {
	switch t := v.(type) {
	case nil:
		return KindUnknown, typeError(v)
	case orb.Geometry:
		return KindGeometry, nil
	case *geojson.Geometry:
		if t == nil {
			return KindUnknown, typeError(v)
		}
		return KindGeometry, nil
	case *geojson.Feature:
		if t == nil {
			return KindUnknown, typeError(v)
		}
		return KindFeature, nil
	case geojson.Feature:
		return KindFeature, nil
	case GeoInterface:
		return KindGeoInterface, nil
	case *geojson.FeatureCollection, geojson.FeatureCollection, Collection, Stream,
		[]any, []*geojson.Feature, []orb.Geometry:
		return KindCollection, nil
	case map[string]any:
		return classifyMap(t)
	default:
		return KindUnknown, typeError(v)
	}
}

func classifyMap(m map[string]any) (Kind, error) {
	switch m["type"] {
	case "Feature":
		return KindFeature, nil
	case "FeatureCollection":
		return KindCollection, nil
	}
	if _, ok := m["coordinates"]; ok {
		return KindGeometry, nil
	}
	if _, ok := m["geometries"]; ok {
		return KindGeometry, nil
	}
	return KindUnknown, typeError(m)
}

func typeError(v any) error {
	return errors.Newf(errors.ErrGeometryType,
		"an input object isn't a feature, geometry, or object exposing a geometry interface: %T %v", v, v)
}

// Items yields the top-level objects of an input: the elements of a
// collection, or the input itself. Errors are yielded at the offending element.
func Items(input any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		kind, err := Classify(input)
		if err != nil {
			yield(nil, err)
			return
		}
		if kind != KindCollection {
			yield(input, nil)
			return
		}

		switch c := input.(type) {
		case *geojson.FeatureCollection:
			for _, f := range c.Features {
				if !yield(f, nil) {
					return
				}
			}
		case geojson.FeatureCollection:
			for _, f := range c.Features {
				if !yield(f, nil) {
					return
				}
			}
		case Collection:
			for _, f := range c.Features() {
				if !yield(f, nil) {
					return
				}
			}
		case Stream:
			for {
				v, err := c.Next()
				if err == io.EOF {
					return
				}
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(v, nil) {
					return
				}
			}
		case []any:
			for _, v := range c {
				if !yield(v, nil) {
					return
				}
			}
		case []*geojson.Feature:
			for _, f := range c {
				if !yield(f, nil) {
					return
				}
			}
		case []orb.Geometry:
			for _, g := range c {
				if !yield(g, nil) {
					return
				}
			}
		case map[string]any:
			fc, err := decodeMap[geojson.FeatureCollection](c)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, f := range fc.Features {
				if !yield(f, nil) {
					return
				}
			}
		}
	}
}

// Geometries yields the geometry of every item of the input. Features with a
// null geometry are skipped. The first object that is neither a feature, a
// geometry nor a geometry interface stops the sequence with a type error;
// geometries already yielded are not retracted.
func Geometries(input any) iter.Seq2[orb.Geometry, error] {
	return func(yield func(orb.Geometry, error) bool) {
		for item, err := range Items(input) {
			if err != nil {
				yield(nil, err)
				return
			}
			g, err := GeometryOf(item)
			if err != nil {
				yield(nil, err)
				return
			}
			if g == nil {
				continue
			}
			if !yield(g, nil) {
				return
			}
		}
	}
}

// CollectGeometries drains Geometries into a slice
func CollectGeometries(input any) ([]orb.Geometry, error) {
	var out []orb.Geometry
	for g, err := range Geometries(input) {
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// GeometryOf extracts the geometry of a single non-collection item. A feature
// with a null geometry returns nil without error.
func GeometryOf(item any) (orb.Geometry, error) {
	kind, err := Classify(item)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindGeometry:
		switch g := item.(type) {
		case orb.Geometry:
			return g, nil
		case *geojson.Geometry:
			return g.Geometry(), nil
		case map[string]any:
			gj, err := decodeMap[geojson.Geometry](g)
			if err != nil {
				return nil, err
			}
			return gj.Geometry(), nil
		}
	case KindFeature:
		switch f := item.(type) {
		case *geojson.Feature:
			return f.Geometry, nil
		case geojson.Feature:
			return f.Geometry, nil
		case map[string]any:
			feature, err := decodeMap[geojson.Feature](f)
			if err != nil {
				return nil, err
			}
			return feature.Geometry, nil
		}
	case KindGeoInterface:
		return item.(GeoInterface).GeoInterface(), nil
	}
	return nil, typeError(item)
}

// Properties returns the attribute map of a feature-like item
func Properties(item any) (map[string]any, bool) {
	switch f := item.(type) {
	case *geojson.Feature:
		return f.Properties, true
	case geojson.Feature:
		return f.Properties, true
	case map[string]any:
		if f["type"] != "Feature" {
			return nil, false
		}
		props, ok := f["properties"].(map[string]any)
		return props, ok
	}
	return nil, false
}

// decodeMap round-trips an already decoded JSON object through the orb
// geojson codec
func decodeMap[T any](m map[string]any) (*T, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrGeometryType, "cannot encode input object")
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, errors.ErrGeometryType, "cannot decode input object as GeoJSON")
	}
	return out, nil
}
