package geoascii

import (
	"io"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/source"
)

// stdinLayerName labels the layer read from "-"
const stdinLayerName = "stdin"

// inputLayer is one layer requested on the command line. Source is a
// *source.Layer, or a single-pass geom.Stream for stdin.
type inputLayer struct {
	Name   string
	Source any
}

// bounded narrows the layer to bbox: an index lookup for opened layers and a
// lazy filter for streams
func (l inputLayer) bounded(bbox *geom.BBox) any {
	if bbox == nil {
		return l.Source
	}
	switch s := l.Source.(type) {
	case *source.Layer:
		return s.Filtered(*bbox)
	case geom.Stream:
		return source.FilterStream(s, *bbox)
	}
	return l.Source
}

// openInputs resolves INFILE[,LAYER...] arguments into layers, in order.
// The i-th --crs value labels the i-th layer.
func openInputs(args []string, stdin io.Reader, crs []string) ([]inputLayer, error) {
	logger := logging.GetLogger("cli")
	if len(args) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoInput)
	}

	var out []inputLayer
	usedStdin := false
	for _, arg := range args {
		in, err := source.ParseInfile(arg)
		if err != nil {
			return nil, err
		}

		if in.IsStdin() {
			if usedStdin {
				return nil, errors.New(errors.ErrInvalidInput, MsgErrStdinTwice)
			}
			usedStdin = true
			out = append(out, inputLayer{Name: stdinLayerName, Source: source.NewStreamReader(stdin)})
			continue
		}

		ds, err := source.Open(in.Path)
		if err != nil {
			return nil, err
		}
		layers, err := ds.Select(in.Layers)
		if err != nil {
			return nil, err
		}
		for _, l := range layers {
			if i := len(out); i < len(crs) {
				l = l.WithCRS(crs[i])
			}
			logger.Debug().
				Str("path", in.Path).
				Str("layer", l.Name).
				Str("crs", l.CRS).
				Int("features", l.Len()).
				Msg("layer selected")
			out = append(out, inputLayer{Name: l.Name, Source: l})
		}
	}
	return out, nil
}

// readLayers opens every argument fully, reading stdin into memory
func readLayers(args []string, stdin io.Reader) ([]*source.Layer, error) {
	if len(args) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoInput)
	}

	var out []*source.Layer
	usedStdin := false
	for _, arg := range args {
		in, err := source.ParseInfile(arg)
		if err != nil {
			return nil, err
		}
		if in.IsStdin() {
			if usedStdin {
				return nil, errors.New(errors.ErrInvalidInput, MsgErrStdinTwice)
			}
			usedStdin = true
			l, err := source.ReadLayer(stdinLayerName, stdin)
			if err != nil {
				return nil, err
			}
			out = append(out, l)
			continue
		}

		ds, err := source.Open(in.Path)
		if err != nil {
			return nil, err
		}
		layers, err := ds.Select(in.Layers)
		if err != nil {
			return nil, err
		}
		out = append(out, layers...)
	}
	return out, nil
}
