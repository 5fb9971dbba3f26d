// Package source opens vector data files as ordered layers of features.
//
// Supported formats are GeoJSON documents, GeoJSON text sequences and KML.
// A directory is opened as a datasource whose layers are its supported files.
package source

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/registry"
)

// Stdin is the path that selects standard input
const Stdin = "-"

// AllLayers selects every layer of a datasource
const AllLayers = "%all"

type reader func(name string, data []byte) ([]*Layer, error)

// readers maps lower-cased file extensions to their reader
var readers = registry.New[reader]()

func init() {
	for _, ext := range []string{".geojson", ".json"} {
		registry.MustRegister(readers, ext, reader(readGeoJSON))
	}
	for _, ext := range []string{".geojsonl", ".geojsons", ".ndjson", ".jsonl"} {
		registry.MustRegister(readers, ext, reader(readGeoJSONSeq))
	}
	registry.MustRegister(readers, ".kml", reader(readKML))
}

// Supported reports whether path has an extension Open can read
func Supported(path string) bool {
	return readers.Has(strings.ToLower(filepath.Ext(path)))
}

// Extensions lists the file extensions Open can read
func Extensions() []string {
	return readers.List()
}

// Datasource is an opened file or directory
type Datasource struct {
	Path   string
	layers []*Layer
}

// Open reads a file or directory into memory
func Open(path string) (*Datasource, error) {
	logger := logging.GetLogger("source")

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceOpen, "cannot open `%s'", path).
			WithDetail("path", path)
	}

	ds := &Datasource{Path: path}
	if info.IsDir() {
		err = ds.readDir(path)
	} else {
		err = ds.readFile(path)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("layers", len(ds.layers)).
		Msg("opened datasource")
	return ds, nil
}

func (d *Datasource) readDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceOpen, "cannot read directory `%s'", dir).
			WithDetail("path", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		if err := d.readFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	if len(d.layers) == 0 {
		return errors.Newf(errors.ErrSourceOpen, "no supported files in `%s'", dir).
			WithDetail("path", dir)
	}
	return nil
}

func (d *Datasource) readFile(path string) error {
	read, err := readers.Get(strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return errors.Newf(errors.ErrSourceOpen, "unsupported file type `%s'", filepath.Ext(path)).
			WithDetail("path", path).
			WithDetail("supported", Extensions())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceOpen, "cannot read `%s'", path).
			WithDetail("path", path)
	}

	layers, err := read(stem(path), data)
	if err != nil {
		if ge, ok := err.(*errors.GeoError); ok {
			ge.WithDetail("path", path)
		}
		return err
	}
	d.layers = append(d.layers, layers...)
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Layers returns the layers in the order they were read
func (d *Datasource) Layers() []*Layer {
	return d.layers
}

// LayerNames returns the layer names in order
func (d *Datasource) LayerNames() []string {
	names := make([]string, len(d.layers))
	for i, l := range d.layers {
		names[i] = l.Name
	}
	return names
}

// Layer looks a layer up by name
func (d *Datasource) Layer(name string) (*Layer, error) {
	for _, l := range d.layers {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, errors.Newf(errors.ErrLayerNotFound, "layer `%s' not found in `%s'", name, d.Path).
		WithDetail("layer", name).
		WithDetail("available", d.LayerNames())
}

// Select resolves layer names in the order given. No names, or AllLayers
// anywhere among them, selects every layer.
func (d *Datasource) Select(names []string) ([]*Layer, error) {
	if len(names) == 0 || slices.Contains(names, AllLayers) {
		return d.layers, nil
	}
	out := make([]*Layer, 0, len(names))
	for _, n := range names {
		l, err := d.Layer(n)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Infile is a datasource path with the layers requested from it
type Infile struct {
	Path   string
	Layers []string
}

// ParseInfile splits "path[,layer,...]". The path "-" means stdin.
func ParseInfile(arg string) (Infile, error) {
	parts := strings.Split(arg, ",")
	if parts[0] == "" {
		return Infile{}, errors.Newf(errors.ErrInvalidInput, "invalid input `%s' - missing path", arg).
			WithDetail("infile", arg)
	}
	in := Infile{Path: parts[0]}
	for _, l := range parts[1:] {
		if l = strings.TrimSpace(l); l != "" {
			in.Layers = append(in.Layers, l)
		}
	}
	return in, nil
}

// IsStdin reports whether the infile reads standard input
func (in Infile) IsStdin() bool {
	return in.Path == Stdin
}
