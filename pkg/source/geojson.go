package source

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/paulmach/orb/geojson"
)

// envelope holds the members needed to dispatch a GeoJSON document
type envelope struct {
	Type string `json:"type"`
	CRS  *struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

// decodeDocument reads one GeoJSON object of any type into features and
// returns the CRS name it declares, if any
func decodeDocument(data []byte) ([]*geojson.Feature, string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, "", errors.Wrap(err, errors.ErrSourceParse, "invalid GeoJSON")
	}
	var crs string
	if env.CRS != nil {
		crs = env.CRS.Properties.Name
	}

	switch env.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, "", errors.Wrap(err, errors.ErrSourceParse, "invalid FeatureCollection")
		}
		return fc.Features, crs, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, "", errors.Wrap(err, errors.ErrSourceParse, "invalid Feature")
		}
		return []*geojson.Feature{f}, crs, nil
	case "":
		return nil, "", errors.New(errors.ErrSourceParse, "GeoJSON object has no type member")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, "", errors.Wrapf(err, errors.ErrSourceParse, "invalid %s geometry", env.Type).
				WithDetail("type", env.Type)
		}
		return []*geojson.Feature{geojson.NewFeature(g.Geometry())}, crs, nil
	}
}

// readGeoJSON reads a single-document GeoJSON file
func readGeoJSON(name string, data []byte) ([]*Layer, error) {
	features, crs, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	l := NewLayer(name, features)
	if crs != "" {
		l.CRS = crs
	}
	return []*Layer{l}, nil
}

// recordSeparator prefixes records in RFC 8142 GeoJSON text sequences
const recordSeparator = 0x1e

// readGeoJSONSeq reads newline-delimited or RS-delimited GeoJSON
func readGeoJSONSeq(name string, data []byte) ([]*Layer, error) {
	data = bytes.ReplaceAll(data, []byte{recordSeparator}, []byte{'\n'})
	s := NewStreamReader(bytes.NewReader(data))

	var features []*geojson.Feature
	for {
		v, err := s.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		features = append(features, v.(*geojson.Feature))
	}
	return []*Layer{NewLayer(name, features)}, nil
}
