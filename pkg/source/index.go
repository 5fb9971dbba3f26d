package source

import (
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/dhconnelly/rtreego"
)

// minExtent keeps point and axis-aligned features indexable; the R-tree
// rejects zero-length sides
const minExtent = 1e-9

// indexedFeature wraps a feature position for R-tree storage
type indexedFeature struct {
	pos  int
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (f *indexedFeature) Bounds() rtreego.Rect {
	return f.rect
}

func toRect(b geom.BBox) rtreego.Rect {
	w, h := b.Width(), b.Height()
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
	return rect
}

func (l *Layer) buildIndex() {
	// 2D, min=25 children, max=50 children
	l.index = rtreego.NewTree(2, 25, 50)
	n := 0
	for i, f := range l.features {
		if f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if b.IsEmpty() {
			continue
		}
		l.index.Insert(&indexedFeature{pos: i, rect: toRect(geom.FromBound(b))})
		n++
	}
	logger := logging.GetLogger("source.index")
	logger.Debug().
		Str("layer", l.Name).
		Int("indexed", n).
		Msg("built spatial index")
}
