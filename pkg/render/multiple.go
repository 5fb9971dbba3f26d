package render

import (
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/style"
)

// maxStyledLayers is how many layers StyleMultiple can number '0'..'9'
const maxStyledLayers = 10

// LayerChar pairs a geometry source with the character it is drawn with
type LayerChar struct {
	Source any
	Char   string
}

// LayerStyle pairs a geometry source with a color or emoji name
type LayerStyle struct {
	Source any
	Style  string
}

// MultiOptions controls RenderMultiple and StyleMultiple
type MultiOptions struct {
	Width      int
	Fill       string
	AllTouched bool

	// BBox fixes the shared extent. When nil the union of every layer's
	// bounds is used.
	BBox *geom.BBox
}

// DefaultMultiOptions returns the multi-layer defaults
func DefaultMultiOptions() MultiOptions {
	return MultiOptions{Width: DefaultWidth, Fill: DefaultFill}
}

// RenderMultiple draws every layer against one shared extent and stacks
// them, first layer at the bottom. Any failure aborts the whole render.
func RenderMultiple(layers []LayerChar, opts MultiOptions) (string, error) {
	g, err := renderMultipleGrid(layers, opts)
	if err != nil {
		return "", err
	}
	return grid.Encode(g), nil
}

func renderMultipleGrid(layers []LayerChar, opts MultiOptions) (grid.Grid, error) {
	logger := logging.GetLogger("render.multiple")

	fill, err := grid.ValidateChar("fill", opts.Fill)
	if err != nil {
		return nil, err
	}
	base := Options{Width: opts.Width, Fill: string(grid.Transparent), AllTouched: opts.AllTouched}
	for _, l := range layers {
		base.Char = l.Char
		if _, _, err := base.validate(); err != nil {
			return nil, err
		}
	}

	sources := make([]any, len(layers))
	for i, l := range layers {
		sources[i] = l.Source
	}

	var bbox geom.BBox
	if opts.BBox != nil {
		if err := opts.BBox.Validate(); err != nil {
			return nil, err
		}
		bbox = *opts.BBox
	} else {
		if bbox, err = unionBBox(sources); err != nil {
			return nil, err
		}
	}
	logger.Debug().Stringer("bbox", bbox).Int("layers", len(layers)).Msg("shared extent resolved")

	base.BBox = &bbox
	grids := make([]grid.Grid, len(layers))
	for i, l := range layers {
		base.Char = l.Char
		g, err := renderGrid(sources[i], base)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "layer %d", i).
				WithDetail("layer", i)
		}
		grids[i] = g
	}

	return grid.StackGrids(grids, fill)
}

// unionBBox computes the combined extent of every source. Sources that can
// only be read once are replaced in place by a fresh copy. Sources without
// geometry do not contribute.
func unionBBox(sources []any) (geom.BBox, error) {
	boxes := make([]geom.BBox, 0, len(sources))
	for i, src := range sources {
		b, rest, err := geom.MinBBox(src)
		if errors.IsErrorCode(err, errors.ErrNoGeometry) {
			sources[i] = rest
			continue
		}
		if err != nil {
			return geom.BBox{}, err
		}
		boxes = append(boxes, b)
		sources[i] = rest
	}
	out, ok := geom.UnionAll(boxes)
	if !ok {
		return geom.BBox{}, errors.New(errors.ErrNoGeometry,
			"cannot compute a bounding box - no layer holds any geometry")
	}
	return out, nil
}

// StyleMultiple numbers the layers '0', '1', ... and colors each with its
// style. The fill may be empty (unstyled space), a single character, a
// palette color or an emoji name.
func StyleMultiple(layers []LayerStyle, opts MultiOptions) (string, error) {
	if len(layers) > maxStyledLayers {
		return "", errors.Newf(errors.ErrPaletteExhausted,
			"can style at most %d layers, got %d", maxStyledLayers, len(layers)).
			WithDetail("layers", len(layers))
	}

	stylemap := make(style.Map, len(layers)+1)
	fillChar, err := fillStyle(opts.Fill, stylemap)
	if err != nil {
		return "", err
	}

	pairs := make([]LayerChar, len(layers))
	for i, l := range layers {
		tok, err := style.ParseToken(l.Style)
		if err != nil {
			return "", err
		}
		ch := rune('0' + i)
		stylemap[ch] = tok
		pairs[i] = LayerChar{Source: l.Source, Char: string(ch)}
	}

	opts.Fill = string(fillChar)
	rendered, err := RenderMultiple(pairs, opts)
	if err != nil {
		return "", err
	}
	return style.Style(rendered, stylemap), nil
}

// fillStyle resolves a fill spec to its character, registering its style
func fillStyle(fill string, m style.Map) (rune, error) {
	switch {
	case fill == "":
		return grid.Transparent, nil
	case len([]rune(fill)) == 1:
		return []rune(fill)[0], nil
	}

	tok, err := style.ParseToken(fill)
	if err != nil {
		return 0, err
	}
	ch, ok := style.DefaultColorChar(tok.Name)
	if tok.Kind == style.KindEmoji || !ok {
		ch = style.LastRampChar()
	}
	m[ch] = tok
	return ch, nil
}
