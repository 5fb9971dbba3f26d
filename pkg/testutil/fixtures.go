package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"
)

// WriteFile lays out a datasource file under dir, creating parent
// directories, and returns its path
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Subdir creates dir/name, e.g. a directory datasource
func Subdir(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	return path
}

// ReadOutput returns what was written to path, an outfile or the log
func ReadOutput(t testing.TB, path string) string {
	t.Helper()
	require.FileExists(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// Square is an axis-aligned square polygon with its lower-left corner at (x, y)
func Square(x, y, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}}
}

// Feature wraps a geometry with properties
func Feature(g orb.Geometry, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(g)
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

// FeatureCollection bundles features in order
func FeatureCollection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, features...)
	return fc
}

// PolygonsGeoJSON holds two disjoint squares with attributes
const PolygonsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "west", "area": 4, "zone": "a"},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "east", "area": 4, "zone": "b"},
      "geometry": {"type": "Polygon", "coordinates": [[[6, 0], [8, 0], [8, 2], [6, 2], [6, 0]]]}
    }
  ]
}`

// LinesGeoJSON holds one diagonal line crossing the PolygonsGeoJSON extent
const LinesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "diagonal"},
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [8, 2]]}
    }
  ]
}`

// PointGeoJSON is a bare geometry document
const PointGeoJSON = `{"type": "Point", "coordinates": [3, 1]}`

// PolygonsGeoJSONSeq is PolygonsGeoJSON as newline-delimited features
const PolygonsGeoJSONSeq = `{"type": "Feature", "properties": {"name": "west"}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]}}

{"type": "Feature", "properties": {"name": "east"}, "geometry": {"type": "Polygon", "coordinates": [[[6, 0], [8, 0], [8, 2], [6, 2], [6, 0]]]}}
`

// PlacemarksKML holds a point, a line and a polygon with extended data
const PlacemarksKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>sample</name>
    <Placemark>
      <name>well</name>
      <ExtendedData>
        <Data name="depth"><value>12</value></Data>
      </ExtendedData>
      <Point><coordinates>1,1,0</coordinates></Point>
    </Placemark>
    <Placemark>
      <name>road</name>
      <LineString>
        <coordinates>
          0,0 4,2
        </coordinates>
      </LineString>
    </Placemark>
    <Placemark>
      <name>field</name>
      <Polygon>
        <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,2 0,2 0,0</coordinates></LinearRing></outerBoundaryIs>
        <innerBoundaryIs><LinearRing><coordinates>1,0.5 2,0.5 2,1.5 1,1.5 1,0.5</coordinates></LinearRing></innerBoundaryIs>
      </Polygon>
    </Placemark>
    <Placemark>
      <name>pair</name>
      <MultiGeometry>
        <Point><coordinates>3,1</coordinates></Point>
        <Point><coordinates>3.5,1.5</coordinates></Point>
      </MultiGeometry>
    </Placemark>
  </Document>
</kml>`
