package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/beevik/etree"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// readKML reads Placemarks from a KML document. Each Folder holding
// placemarks becomes a layer named after the folder; placemarks outside any
// folder form a layer named after the file.
func readKML(name string, data []byte) ([]*Layer, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrSourceParse, "invalid KML")
	}
	root := doc.Root()
	if root == nil || root.Tag != "kml" {
		return nil, errors.New(errors.ErrSourceParse, "document is not KML")
	}

	k := &kmlReader{file: name, byName: map[string]int{}}
	if err := k.walk(root, name); err != nil {
		return nil, err
	}

	layers := make([]*Layer, len(k.order))
	for i, group := range k.order {
		layers[i] = NewLayer(group.name, group.features)
	}
	return layers, nil
}

type kmlGroup struct {
	name     string
	features []*geojson.Feature
}

type kmlReader struct {
	file   string
	order  []*kmlGroup
	byName map[string]int
}

func (k *kmlReader) group(name string) *kmlGroup {
	if i, ok := k.byName[name]; ok {
		return k.order[i]
	}
	k.byName[name] = len(k.order)
	g := &kmlGroup{name: name}
	k.order = append(k.order, g)
	return g
}

func (k *kmlReader) walk(el *etree.Element, layer string) error {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "Folder":
			folder := fmt.Sprintf("%s-%d", k.file, len(k.order))
			if n := child.SelectElement("name"); n != nil && strings.TrimSpace(n.Text()) != "" {
				folder = strings.TrimSpace(n.Text())
			}
			if err := k.walk(child, folder); err != nil {
				return err
			}
		case "Document":
			if err := k.walk(child, layer); err != nil {
				return err
			}
		case "Placemark":
			f, err := placemark(child)
			if err != nil {
				return err
			}
			g := k.group(layer)
			g.features = append(g.features, f)
		}
	}
	return nil
}

func placemark(el *etree.Element) (*geojson.Feature, error) {
	var g orb.Geometry
	for _, child := range el.ChildElements() {
		parsed, ok, err := kmlGeometry(child)
		if err != nil {
			return nil, err
		}
		if ok {
			g = parsed
			break
		}
	}

	f := geojson.NewFeature(g)
	if n := el.SelectElement("name"); n != nil {
		f.Properties["name"] = strings.TrimSpace(n.Text())
	}
	if d := el.SelectElement("description"); d != nil {
		f.Properties["description"] = strings.TrimSpace(d.Text())
	}
	for _, data := range el.FindElements("./ExtendedData/Data") {
		key := data.SelectAttrValue("name", "")
		if key == "" {
			continue
		}
		if v := data.SelectElement("value"); v != nil {
			f.Properties[key] = strings.TrimSpace(v.Text())
		}
	}
	for _, data := range el.FindElements("./ExtendedData/SchemaData/SimpleData") {
		if key := data.SelectAttrValue("name", ""); key != "" {
			f.Properties[key] = strings.TrimSpace(data.Text())
		}
	}
	return f, nil
}

// kmlGeometry parses a geometry element; ok is false for other elements
func kmlGeometry(el *etree.Element) (orb.Geometry, bool, error) {
	switch el.Tag {
	case "Point":
		pts, err := elementCoords(el)
		if err != nil {
			return nil, true, err
		}
		if len(pts) == 0 {
			return nil, true, errors.New(errors.ErrSourceParse, "KML Point has no coordinates")
		}
		return pts[0], true, nil
	case "LineString":
		pts, err := elementCoords(el)
		return orb.LineString(pts), true, err
	case "LinearRing":
		pts, err := elementCoords(el)
		return orb.Polygon{orb.Ring(pts)}, true, err
	case "Polygon":
		p, err := kmlPolygon(el)
		return p, true, err
	case "MultiGeometry":
		var c orb.Collection
		for _, child := range el.ChildElements() {
			g, ok, err := kmlGeometry(child)
			if err != nil {
				return nil, true, err
			}
			if ok && g != nil {
				c = append(c, g)
			}
		}
		return c, true, nil
	}
	return nil, false, nil
}

func kmlPolygon(el *etree.Element) (orb.Polygon, error) {
	var p orb.Polygon
	outer := el.FindElement("./outerBoundaryIs/LinearRing")
	if outer == nil {
		return nil, errors.New(errors.ErrSourceParse, "KML Polygon has no outer boundary")
	}
	ring, err := elementCoords(outer)
	if err != nil {
		return nil, err
	}
	p = append(p, orb.Ring(ring))

	for _, inner := range el.FindElements("./innerBoundaryIs/LinearRing") {
		ring, err := elementCoords(inner)
		if err != nil {
			return nil, err
		}
		p = append(p, orb.Ring(ring))
	}
	return p, nil
}

// elementCoords parses the coordinates child: whitespace separated
// "lon,lat[,alt]" tuples
func elementCoords(el *etree.Element) ([]orb.Point, error) {
	c := el.SelectElement("coordinates")
	if c == nil {
		return nil, nil
	}
	var pts []orb.Point
	for _, tuple := range strings.Fields(c.Text()) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return nil, errors.Newf(errors.ErrSourceParse, "invalid KML coordinate `%s'", tuple)
		}
		x, errX := strconv.ParseFloat(parts[0], 64)
		y, errY := strconv.ParseFloat(parts[1], 64)
		if errX != nil || errY != nil {
			return nil, errors.Newf(errors.ErrSourceParse, "invalid KML coordinate `%s'", tuple)
		}
		pts = append(pts, orb.Point{x, y})
	}
	return pts, nil
}
