package geoascii

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/grid"
	"github.com/arthur-debert/geoascii/pkg/style"
	"github.com/arthur-debert/geoascii/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	westGeoJSON = `{"type": "Feature", "properties": {"name": "west"}, "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [2, 0], [2, 2], [0, 2], [0, 0]]]}}`
	eastGeoJSON = `{"type": "Feature", "properties": {"name": "east"}, "geometry": {"type": "Polygon", "coordinates": [[[6, 0], [8, 0], [8, 2], [6, 2], [6, 0]]]}}`
)

// execute runs the root command in-process and returns what it wrote to stdout
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderSingleLayer(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("polygons.geojson", testutil.PolygonsGeoJSON)

	out, err := execute(t, "", path, "-w", "16", "-f", ".")
	require.NoError(t, err)
	assert.Equal(t, "+ + . . . . + +\n+ + . . . . + +\n", out)

	out, err = execute(t, "", path, "-w", "16", "-f", ".", "-c", "x")
	require.NoError(t, err)
	assert.Equal(t, "x x . . . . x x\nx x . . . . x x\n", out)
}

func TestRenderUsesConfiguredDefaults(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("polygons.geojson", testutil.PolygonsGeoJSON)
	env.WriteConfig("config.toml", "[render]\nwidth = 16\nfill = \".\"\nchar = \"#\"\n")

	out, err := execute(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "# # . . . . # #\n# # . . . . # #\n", out)

	t.Setenv("GEOASCII_RENDER_CHAR", "@")
	out, err = execute(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "@ @ . . . . @ @\n@ @ . . . . @ @\n", out)
}

func TestRenderStdin(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, testutil.PolygonsGeoJSON, "-", "-w", "16", "-f", ".")
	require.NoError(t, err)
	assert.Equal(t, "+ + . . . . + +\n+ + . . . . + +\n", out)

	_, err = execute(t, testutil.PolygonsGeoJSON, "-", "-")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRenderMultipleLayers(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	west := env.WriteData("west.geojson", westGeoJSON)
	east := env.WriteData("east.geojson", eastGeoJSON)

	t.Run("auto characters", func(t *testing.T) {
		out, err := execute(t, "", west, east, "-w", "16", "-f", ".")
		require.NoError(t, err)
		assert.Equal(t, "0 0 . . . . 1 1\n0 0 . . . . 1 1\n", out)
	})

	t.Run("explicit characters", func(t *testing.T) {
		out, err := execute(t, "", west, east, "-w", "16", "-f", ".", "-c", "a", "-c", "b")
		require.NoError(t, err)
		assert.Equal(t, "a a . . . . b b\na a . . . . b b\n", out)
	})

	t.Run("colors pick their characters", func(t *testing.T) {
		out, err := execute(t, "", west, east, "-w", "16", "-c", "blue", "-c", "red", "-f", "black")
		require.NoError(t, err)
		assert.Equal(t, "1 1 7 7 7 7 2 2\n1 1 7 7 7 7 2 2\n", out)
	})

	t.Run("explicit bbox", func(t *testing.T) {
		out, err := execute(t, "", west, east, "-w", "8", "-f", ".", "--bbox", "0 0 4 2")
		require.NoError(t, err)
		assert.Equal(t, "0 0 . .\n0 0 . .\n", out)
	})

	t.Run("empty layer leaves the extent alone", func(t *testing.T) {
		empty := env.WriteData("empty.geojson", `{"type": "FeatureCollection", "features": []}`)
		out, err := execute(t, "", west, empty, "-w", "4", "-f", ".")
		require.NoError(t, err)
		assert.Equal(t, "0 0\n0 0\n", out)
	})

	t.Run("bbox from a datasource", func(t *testing.T) {
		out, err := execute(t, "", west, east, "-w", "4", "-f", ".", "--bbox", west)
		require.NoError(t, err)
		assert.Equal(t, "0 0\n0 0\n", out)
	})
}

func TestRenderStyled(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	west := env.WriteData("west.geojson", westGeoJSON)
	east := env.WriteData("east.geojson", eastGeoJSON)
	env.WriteConfig("config.toml", "[output]\ncolor = \"always\"\n")

	out, err := execute(t, "", west, east, "-w", "16", "-f", ".")
	require.NoError(t, err)
	assert.NotEqual(t, out, style.Strip(out))
	assert.Equal(t,
		grid.Decode("0 0 . . . . 1 1\n0 0 . . . . 1 1"),
		grid.Decode(strings.TrimSuffix(style.Strip(out), "\n")))

	plain, err := execute(t, "", west, east, "-w", "16", "-f", ".", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "0 0 . . . . 1 1\n0 0 . . . . 1 1\n", plain)
}

func TestRenderOutfile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("polygons.geojson", testutil.PolygonsGeoJSON)
	outfile := filepath.Join(env.Root, "out.txt")

	out, err := execute(t, "", path, "-w", "16", "-f", ".", "-o", outfile)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "+ + . . . . + +\n+ + . . . . + +\n", testutil.ReadOutput(t, outfile))
}

func TestRenderErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	west := env.WriteData("west.geojson", westGeoJSON)
	east := env.WriteData("east.geojson", eastGeoJSON)

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"no input", nil, errors.ErrInvalidInput},
		{"missing file", []string{filepath.Join(env.Root, "nope.geojson")}, errors.ErrSourceOpen},
		{"unknown layer", []string{west + ",lakes"}, errors.ErrLayerNotFound},
		{"zero width", []string{west, "-w", "0"}, errors.ErrInvalidWidth},
		{"char count", []string{west, east, "-c", "a"}, errors.ErrLayerMismatch},
		{"mixed syntax", []string{west, east, "-c", "a", "-c", "blue"}, errors.ErrInvalidInput},
		{"duplicate chars", []string{west, east, "-c", "a", "-c", "a"}, errors.ErrInvalidInput},
		{"same char twice", []string{west, east, "-c", "a=red", "-c", "a=blue"}, errors.ErrInvalidInput},
		{"long char", []string{west, "-c", "ab"}, errors.ErrInvalidChar},
		{"unknown style", []string{west, "-c", "a=chartreuse"}, errors.ErrUnknownStyle},
		{"fill collides", []string{west, east, "-f", "green"}, errors.ErrInvalidChar},
		{"bad bbox", []string{west, "--bbox", "1 2 3"}, errors.ErrInvalidBBox},
		{"inverted bbox", []string{west, "--bbox", "4 0 0 2"}, errors.ErrInvalidBBox},
		{"palette exhausted", []string{west, west, west, west, west, west, west, west, west}, errors.ErrPaletteExhausted},
		{"iterate over two layers", []string{west, east, "-i"}, errors.ErrLayerMismatch},
		{"iterate with two crs", []string{west, "-i", "--crs", "EPSG:4326", "--crs", "EPSG:3857"}, errors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestIterate(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("polygons.geojson", testutil.PolygonsGeoJSON)

	t.Run("pages with properties", func(t *testing.T) {
		out, err := execute(t, "", path, "-i", "-w", "4", "-f", ".", "-p", "name", "--no-prompt")
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"+------+------+",
			"| name | west |",
			"+------+------+",
			"+ +",
			"+ +",
			"",
			"+------+------+",
			"| name | east |",
			"+------+------+",
			"+ +",
			"+ +",
			"",
			"",
		}, "\n"), out)
	})

	t.Run("bbox filters features", func(t *testing.T) {
		out, err := execute(t, "", path, "-i", "-w", "4", "-p", "name", "--bbox", "5 0 9 2")
		require.NoError(t, err)
		assert.Contains(t, out, "| name | east |")
		assert.NotContains(t, out, "west")
	})

	t.Run("stdin is read lazily", func(t *testing.T) {
		out, err := execute(t, testutil.PolygonsGeoJSONSeq, "-", "-i", "-w", "4", "-f", ".", "-p", "%all")
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "| name | "))
	})

	t.Run("missing property", func(t *testing.T) {
		_, err := execute(t, "", path, "-i", "-p", "owner")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingProperty))
	})
}

func TestLayersCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("polygons.geojson", testutil.PolygonsGeoJSON)
	kml := env.WriteData("sample.kml", testutil.PlacemarksKML)

	out, err := execute(t, "", "layers", path, kml)
	require.NoError(t, err)
	assert.Contains(t, out, " polygons |")
	assert.Contains(t, out, "EPSG:4326")
	assert.Contains(t, out, "(0, 0, 8, 2)")
	assert.Contains(t, out, "area, name, zone")
	assert.Contains(t, out, " sample |")

	out, err = execute(t, testutil.PointGeoJSON, "layers", "-")
	require.NoError(t, err)
	assert.Contains(t, out, " stdin |")
	assert.Contains(t, out, "(3, 1, 3, 1)")

	_, err = execute(t, "", "layers")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	t.Setenv("GEOASCII_RENDER_WIDTH", "12")

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "width = 12")

	out, err = execute(t, "", "config", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "width: 12")

	out, err = execute(t, "", "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# width = 40")

	_, err = execute(t, "", "config", "--format", "ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	path := env.WriteData("custom.yaml", "render:\n  width: 33\n")
	out, err = execute(t, "", "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "width = 12", "environment beats the config file")

	broken := env.WriteData("broken.toml", "[render\n")
	_, err = execute(t, "", "config", "--config", broken)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestHelpTopics(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "styles")
	assert.Contains(t, out, "--bbox")

	out, err = execute(t, "", "help", "iterate")
	require.NoError(t, err)
	assert.Contains(t, out, "Show the features of a single layer")

	out, err = execute(t, "", "help", "datasources")
	require.NoError(t, err)
	assert.Contains(t, out, "Several layers are drawn")

	out, err = execute(t, "", "help", "layers")
	require.NoError(t, err)
	assert.Contains(t, out, MsgLayersLong[:20])
}

func TestCompletionAndVersion(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "geoascii")

	_, err = execute(t, "", "completion", "tcsh")
	assert.Error(t, err)

	out, err = execute(t, "", "man")
	require.NoError(t, err)
	assert.Contains(t, out, ".TH \"GEOASCII\" \"1\"")
	assert.Contains(t, out, "iterate")

	out, err = execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestVerbosityWritesLog(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("polygons.geojson", testutil.PolygonsGeoJSON)

	_, err := execute(t, "", path, "-vv")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadOutput(t, env.LogFile()), "layer selected")
}
