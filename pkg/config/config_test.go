package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/testutil"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 40, cfg.Render.Width)
	assert.Equal(t, " ", cfg.Render.Fill)
	assert.Equal(t, "+", cfg.Render.Char)
	assert.False(t, cfg.Render.AllTouched)
	assert.True(t, cfg.Paginate.Prompt)
	assert.Empty(t, cfg.Paginate.Properties)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
	assert.Equal(t, "", cfg.Logging.File)
}

func TestLoadWithoutUserFile(t *testing.T) {
	testutil.NewTestEnvironment(t)

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadUserTOML(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", "[render]\nwidth = 20\nfill = \".\"\n\n[output]\ncolor = \"NEVER\"\n")

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Render.Width)
	assert.Equal(t, ".", cfg.Render.Fill)
	assert.Equal(t, "+", cfg.Render.Char, "unset keys keep defaults")
	assert.Equal(t, config.ColorNever, cfg.Output.Color)
}

func TestLoadUserYAML(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.yaml", "paginate:\n  prompt: false\n  properties: [name, area]\n")

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.False(t, cfg.Paginate.Prompt)
	assert.Equal(t, []string{"name", "area"}, cfg.Paginate.Properties)
}

func TestLoadPrecedence(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("config.toml", "[render]\nwidth = 20\nchar = \"#\"\n")
	t.Setenv("GEOASCII_RENDER_WIDTH", "30")
	t.Setenv("GEOASCII_RENDER_ALL_TOUCHED", "true")
	t.Setenv("GEOASCII_PAGINATE_PROPERTIES", "name,zone")

	cfg, err := config.Load(config.LoadOptions{
		Overrides: map[string]any{"render.char": "o"},
	})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Render.Width, "env beats file")
	assert.True(t, cfg.Render.AllTouched)
	assert.Equal(t, "o", cfg.Render.Char, "overrides beat file")
	assert.Equal(t, []string{"name", "zone"}, cfg.Paginate.Properties)
}

func TestLoadExplicitPath(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteData("custom.yml", "render:\n  width: 12\n")

	cfg, err := config.Load(config.LoadOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Render.Width)

	t.Setenv(config.EnvConfigPath, path)
	cfg, err = config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Render.Width)
}

func TestLoadErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(config.LoadOptions{Path: filepath.Join(env.Root, "nope.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := env.WriteData("broken.toml", "[render\nwidth = ")
		_, err := config.Load(config.LoadOptions{Path: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("bad color mode", func(t *testing.T) {
		path := env.WriteData("color.toml", "[output]\ncolor = \"sometimes\"\n")
		_, err := config.Load(config.LoadOptions{Path: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("non positive width", func(t *testing.T) {
		path := env.WriteData("width.toml", "[render]\nwidth = 0\n")
		_, err := config.Load(config.LoadOptions{Path: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		assert.Equal(t, errors.CategoryConfiguration, errors.CategoryOf(errors.GetErrorCode(err)))
	})
}

func TestMarshal(t *testing.T) {
	cfg := config.Default()
	cfg.Paginate.Properties = []string{"name"}

	out, err := config.Marshal(cfg, "toml")
	require.NoError(t, err)
	var fromTOML config.Config
	require.NoError(t, toml.Unmarshal(out, &fromTOML))
	assert.Equal(t, *cfg, fromTOML)

	out, err = config.Marshal(cfg, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "all_touched: false")
	var fromYAML config.Config
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, *cfg, fromYAML)

	_, err = config.Marshal(cfg, "json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGenerateConfigContent(t *testing.T) {
	content := config.GenerateConfigContent()
	assert.Contains(t, content, "[render]")
	assert.Contains(t, content, "# width = 40")
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line %q should be commented", line)
	}
}

func TestGlobalConfig(t *testing.T) {
	config.Initialize(nil)
	assert.Equal(t, 40, config.Get().Render.Width)

	custom := config.Default()
	custom.Render.Width = 7
	config.Initialize(custom)
	t.Cleanup(func() { config.Initialize(nil) })
	assert.Equal(t, 7, config.Get().Render.Width)
}
