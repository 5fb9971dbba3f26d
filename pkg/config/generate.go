package config

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats lists the encodings Marshal accepts
var Formats = []string{"toml", "yaml"}

// Marshal serialises a configuration as toml or yaml
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml", "":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode toml")
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode yaml")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format `%s' - must be toml or yaml", format).
		WithDetail("format", format)
}

// GenerateConfigContent returns the defaults file with every value
// commented out, ready to be saved as a user config
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues comments out every assignment line, keeping
// comments, blank lines and section headers
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
