package config

import (
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
)

// Config is the effective geoascii configuration
type Config struct {
	Render   Render   `koanf:"render" toml:"render" yaml:"render"`
	Paginate Paginate `koanf:"paginate" toml:"paginate" yaml:"paginate"`
	Output   Output   `koanf:"output" toml:"output" yaml:"output"`
	Logging  Logging  `koanf:"logging" toml:"logging" yaml:"logging"`
}

// Render holds the defaults for rendering flags
type Render struct {
	Width      int    `koanf:"width" toml:"width" yaml:"width"`
	Fill       string `koanf:"fill" toml:"fill" yaml:"fill"`
	Char       string `koanf:"char" toml:"char" yaml:"char"`
	AllTouched bool   `koanf:"all_touched" toml:"all_touched" yaml:"all_touched"`
}

// Paginate holds the defaults for --iterate
type Paginate struct {
	Prompt     bool     `koanf:"prompt" toml:"prompt" yaml:"prompt"`
	Properties []string `koanf:"properties" toml:"properties" yaml:"properties"`
}

// Output controls terminal decoration
type Output struct {
	Color ColorMode `koanf:"color" toml:"color" yaml:"color"`
}

// Logging mirrors logging.Options
type Logging struct {
	Verbosity int    `koanf:"verbosity" toml:"verbosity" yaml:"verbosity"`
	File      string `koanf:"file" toml:"file" yaml:"file"`
}

// ColorMode decides whether styled output is written
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// UnmarshalText accepts auto, always or never in any case
func (m *ColorMode) UnmarshalText(text []byte) error {
	v := ColorMode(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case ColorAuto, ColorAlways, ColorNever:
		*m = v
		return nil
	case "":
		*m = ColorAuto
		return nil
	}
	return errors.Newf(errors.ErrConfigParse,
		"invalid color mode `%s' - must be auto, always or never", string(text)).
		WithDetail("value", string(text))
}

// MarshalText writes the mode name
func (m ColorMode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// Validate checks values that the decoder cannot
func (c *Config) Validate() error {
	if c.Render.Width <= 0 {
		return errors.Newf(errors.ErrConfigParse, "render.width must be positive, got %d", c.Render.Width).
			WithDetail("key", "render.width")
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigParse, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity).
			WithDetail("key", "logging.verbosity")
	}
	return nil
}

// Global configuration instance
var globalConfig *Config

// Initialize sets up the global configuration
func Initialize(cfg *Config) {
	if cfg == nil {
		cfg = Default()
	}
	globalConfig = cfg
}

// Get returns the current configuration
func Get() *Config {
	if globalConfig == nil {
		Initialize(nil)
	}
	return globalConfig
}

// Default returns the embedded defaults alone
func Default() *Config {
	cfg, err := decode(defaultsOnly())
	if err != nil {
		// the embedded file is part of the binary
		panic(err)
	}
	return cfg
}
