package render_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/geom"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/render"
	"github.com/arthur-debert/geoascii/pkg/source"
	"github.com/arthur-debert/geoascii/pkg/style"
	"github.com/arthur-debert/geoascii/pkg/testutil"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multi(width int, fill string) render.MultiOptions {
	o := render.DefaultMultiOptions()
	o.Width, o.Fill = width, fill
	return o
}

func TestRenderMultiple(t *testing.T) {
	west := testutil.FeatureCollection(testutil.Feature(testutil.Square(0, 0, 2), nil))
	east := testutil.FeatureCollection(testutil.Feature(testutil.Square(6, 0, 2), nil))

	out, err := render.RenderMultiple([]render.LayerChar{
		{Source: west, Char: "0"},
		{Source: east, Char: "1"},
	}, multi(16, "."))
	require.NoError(t, err)
	assert.Equal(t, "0 0 . . . . 1 1\n0 0 . . . . 1 1", out)
}

func TestRenderMultipleForksSinglePassSources(t *testing.T) {
	west := testutil.Feature(testutil.Square(0, 0, 2), nil)
	east := testutil.Feature(testutil.Square(6, 0, 2), nil)

	out, err := render.RenderMultiple([]render.LayerChar{
		{Source: geom.NewSliceStream(west), Char: "0"},
		{Source: geom.NewSliceStream(east), Char: "1"},
	}, multi(16, "."))
	require.NoError(t, err)
	assert.Equal(t, "0 0 . . . . 1 1\n0 0 . . . . 1 1", out)
}

func TestRenderMultipleStackingOrder(t *testing.T) {
	big := testutil.Square(0, 0, 4)
	small := testutil.Square(0, 0, 2)

	out, err := render.RenderMultiple([]render.LayerChar{
		{Source: big, Char: "a"},
		{Source: small, Char: "b"},
	}, multi(8, "."))
	require.NoError(t, err)
	assert.Equal(t, "a a a a\na a a a\nb b a a\nb b a a", out)

	out, err = render.RenderMultiple([]render.LayerChar{
		{Source: small, Char: "b"},
		{Source: big, Char: "a"},
	}, multi(8, "."))
	require.NoError(t, err)
	assert.Equal(t, "a a a a\na a a a\na a a a\na a a a", out)
}

func TestRenderMultipleExplicitBBox(t *testing.T) {
	o := multi(8, ".")
	o.BBox = bboxPtr(0, 0, 4, 4)
	out, err := render.RenderMultiple([]render.LayerChar{
		{Source: testutil.Square(0, 0, 2), Char: "x"},
	}, o)
	require.NoError(t, err)
	assert.Equal(t, ". . . .\n. . . .\nx x . .\nx x . .", out)
}

func TestRenderMultipleIgnoresEmptyLayersForExtent(t *testing.T) {
	square := source.NewLayer("parcels", []*geojson.Feature{
		geojson.NewFeature(testutil.Square(100, 100, 4)),
	})
	empty := source.NewLayer("lakes", nil)
	want := "0 0 0 0\n0 0 0 0\n0 0 0 0\n0 0 0 0"

	alone, err := render.RenderMultiple([]render.LayerChar{{Source: square, Char: "0"}}, multi(8, "."))
	require.NoError(t, err)
	assert.Equal(t, want, alone)

	out, err := render.RenderMultiple([]render.LayerChar{
		{Source: square, Char: "0"},
		{Source: empty, Char: "1"},
	}, multi(8, "."))
	require.NoError(t, err)
	assert.Equal(t, want, out)

	out, err = render.RenderMultiple([]render.LayerChar{
		{Source: &geojson.FeatureCollection{}, Char: "1"},
		{Source: geom.NewSliceStream(), Char: "2"},
		{Source: square, Char: "0"},
	}, multi(8, "."))
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestRenderMultipleErrors(t *testing.T) {
	sq := testutil.Square(0, 0, 2)

	t.Run("bad fill", func(t *testing.T) {
		_, err := render.RenderMultiple([]render.LayerChar{{Source: sq, Char: "+"}}, multi(8, "ab"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidChar))
	})

	t.Run("bad layer char", func(t *testing.T) {
		_, err := render.RenderMultiple([]render.LayerChar{
			{Source: sq, Char: "+"},
			{Source: sq, Char: "xy"},
		}, multi(8, "."))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidChar))
	})

	t.Run("bad width", func(t *testing.T) {
		_, err := render.RenderMultiple([]render.LayerChar{{Source: sq, Char: "+"}}, multi(0, "."))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidWidth))
	})

	t.Run("inverted bbox", func(t *testing.T) {
		o := multi(8, ".")
		o.BBox = bboxPtr(1, 1, 0, 0)
		_, err := render.RenderMultiple([]render.LayerChar{{Source: sq, Char: "+"}}, o)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidBBox))
	})

	t.Run("bad source aborts everything", func(t *testing.T) {
		out, err := render.RenderMultiple([]render.LayerChar{
			{Source: sq, Char: "+"},
			{Source: 42, Char: "o"},
		}, multi(8, "."))
		require.Error(t, err)
		assert.Empty(t, out)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGeometryType))
	})

	t.Run("no layers", func(t *testing.T) {
		_, err := render.RenderMultiple(nil, multi(8, "."))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoGeometry))
	})

	t.Run("only empty layers", func(t *testing.T) {
		_, err := render.RenderMultiple([]render.LayerChar{
			{Source: source.NewLayer("lakes", nil), Char: "+"},
		}, multi(8, "."))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoGeometry))
	})
}

func TestStyleMultiple(t *testing.T) {
	west := testutil.Square(0, 0, 2)
	east := testutil.Square(6, 0, 2)

	out, err := render.StyleMultiple([]render.LayerStyle{
		{Source: west, Style: "red"},
		{Source: east, Style: "blue"},
	}, multi(16, ""))
	require.NoError(t, err)

	red, _ := style.ANSIColormap("red")
	blue, _ := style.ANSIColormap("blue")
	assert.Contains(t, out, red+"0 "+style.Reset)
	assert.Contains(t, out, blue+"1 "+style.Reset)
	assert.Equal(t, 2, len(strings.Split(out, "\n")))

	plain, err := render.RenderMultiple([]render.LayerChar{
		{Source: west, Char: "0"},
		{Source: east, Char: "1"},
	}, multi(16, " "))
	require.NoError(t, err)
	assert.Equal(t, grid.Decode(plain), grid.Decode(style.Strip(out)))
}

func TestStyleMultipleFill(t *testing.T) {
	layers := []render.LayerStyle{{Source: testutil.Square(0, 0, 2), Style: "red"}}
	o := multi(8, "")
	o.BBox = bboxPtr(0, 0, 4, 4)

	t.Run("plain character", func(t *testing.T) {
		o := o
		o.Fill = "~"
		out, err := render.StyleMultiple(layers, o)
		require.NoError(t, err)
		assert.Contains(t, out, "~ ~ ~ ~ ")
	})

	t.Run("palette color", func(t *testing.T) {
		o := o
		o.Fill = "black"
		out, err := render.StyleMultiple(layers, o)
		require.NoError(t, err)
		black, _ := style.ANSIColormap("black")
		assert.Contains(t, out, black+"7 "+style.Reset)
	})

	t.Run("emoji", func(t *testing.T) {
		o := o
		o.Fill = ":smile:"
		out, err := render.StyleMultiple(layers, o)
		require.NoError(t, err)
		assert.Contains(t, out, "😄")
		assert.NotContains(t, out, "$")
	})

	t.Run("unknown fill style", func(t *testing.T) {
		o := o
		o.Fill = "chartreuse"
		_, err := render.StyleMultiple(layers, o)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownStyle))
	})
}

func TestStyleMultipleValidatesBeforeRendering(t *testing.T) {
	t.Run("unknown layer style", func(t *testing.T) {
		_, err := render.StyleMultiple([]render.LayerStyle{
			{Source: 42, Style: "not-a-color"},
		}, multi(8, ""))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownStyle))
	})

	t.Run("too many layers", func(t *testing.T) {
		layers := make([]render.LayerStyle, 11)
		for i := range layers {
			layers[i] = render.LayerStyle{Source: 42, Style: "red"}
		}
		_, err := render.StyleMultiple(layers, multi(8, ""))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPaletteExhausted))
	})
}
