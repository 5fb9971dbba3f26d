package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix starts every environment override
	EnvPrefix = "GEOASCII_"
	// EnvConfigPath names an explicit config file
	EnvConfigPath = EnvPrefix + "CONFIG"
)

// userFiles are tried in order inside the geoascii config directory
var userFiles = []string{"config.toml", "config.yaml", "config.yml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults file
func DefaultsContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// LoadOptions selects the optional layers
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string

	// Overrides are dotted keys applied last, typically from flags
	Overrides map[string]any
}

// Load builds the effective configuration:
// defaults → user file → GEOASCII_ environment → overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := defaultsOnly()

	path, explicit := userConfigPath(opts.Path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("loaded user config")
		} else if explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
				WithDetail("path", path)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultsOnly() *koanf.Koanf {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	return k
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// envKey maps GEOASCII_RENDER_ALL_TOUCHED to render.all_touched. Empty
// values and the config path variable are skipped.
func envKey(key, value string) (string, interface{}) {
	if value == "" || key == EnvConfigPath {
		return "", nil
	}
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(name, "_")
	if !ok {
		return "", nil
	}
	return section + "." + rest, value
}

// userConfigPath returns the file to load and whether it was asked for
// explicitly
func userConfigPath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, true
	}
	dir := ConfigDir()
	for _, name := range userFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, false
		}
	}
	return "", false
}

// ConfigDir is the geoascii directory under the XDG config home
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = xdg.ConfigHome
	}
	return filepath.Join(base, logging.AppDirName)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
