// Package config handles configuration management for geoascii.
// It layers the embedded defaults, an optional user file in TOML or YAML,
// GEOASCII_ environment variables and command-line overrides.
package config
