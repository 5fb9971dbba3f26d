package source

import (
	"maps"
	"slices"
	"sync"

	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb/geojson"
)

// DefaultCRS is assigned to layers that do not declare one
const DefaultCRS = "EPSG:4326"

var (
	_ geom.Collection = (*Layer)(nil)
	_ geom.Bounded    = (*Layer)(nil)
)

// Layer is an ordered, in-memory set of features read from one source.
type Layer struct {
	Name string
	CRS  string

	features []*geojson.Feature
	bounds   geom.BBox
	extent   bool

	indexOnce sync.Once
	index     *rtreego.Rtree
}

// NewLayer builds a layer and computes its extent
func NewLayer(name string, features []*geojson.Feature) *Layer {
	l := &Layer{Name: name, CRS: DefaultCRS, features: features}
	if b, err := geom.BoundsOf(features); err == nil {
		l.bounds, l.extent = b, true
	}
	return l
}

// Features returns the features in source order
func (l *Layer) Features() []*geojson.Feature {
	return l.features
}

// Len is the number of features
func (l *Layer) Len() int {
	return len(l.features)
}

// Bounds is the extent of every geometry in the layer. Layers without
// geometries report an empty box at the origin.
func (l *Layer) Bounds() geom.BBox {
	return l.bounds
}

// HasExtent reports whether the layer holds at least one geometry
func (l *Layer) HasExtent() bool {
	return l.extent
}

// Schema lists the property names used by any feature, sorted
func (l *Layer) Schema() []string {
	seen := make(map[string]struct{})
	for _, f := range l.features {
		for k := range f.Properties {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// WithCRS returns the layer labelled with a different CRS. Coordinates are
// never transformed.
func (l *Layer) WithCRS(crs string) *Layer {
	if crs == "" {
		return l
	}
	return &Layer{
		Name:     l.Name,
		CRS:      crs,
		features: l.features,
		bounds:   l.bounds,
		extent:   l.extent,
	}
}

// Filter returns the features whose bounds intersect bbox, in source order
func (l *Layer) Filter(bbox geom.BBox) []*geojson.Feature {
	l.indexOnce.Do(l.buildIndex)

	hits := l.index.SearchIntersect(toRect(bbox))
	idx := make([]int, 0, len(hits))
	for _, h := range hits {
		idx = append(idx, h.(*indexedFeature).pos)
	}
	slices.Sort(idx)

	out := make([]*geojson.Feature, len(idx))
	for i, pos := range idx {
		out[i] = l.features[pos]
	}
	return out
}

// Filtered returns a new layer holding only the features intersecting bbox
func (l *Layer) Filtered(bbox geom.BBox) *Layer {
	f := NewLayer(l.Name, l.Filter(bbox))
	f.CRS = l.CRS
	return f
}
