package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnvironment points the XDG config and state directories at a
// temporary tree so tests never touch the user's files
type TestEnvironment struct {
	Root      string
	ConfigDir string
	StateDir  string
	DataDir   string

	t *testing.T
}

// NewTestEnvironment creates the directories and exports XDG_CONFIG_HOME,
// XDG_STATE_HOME and unsets NO_COLOR and the GEOASCII_ variables.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: Subdir(t, root, "config"),
		StateDir:  Subdir(t, root, "state"),
		DataDir:   Subdir(t, root, "data"),
		t:         t,
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	for _, key := range []string{
		"NO_COLOR",
		"GEOASCII_CONFIG",
		"GEOASCII_RENDER_WIDTH",
		"GEOASCII_RENDER_FILL",
		"GEOASCII_RENDER_CHAR",
		"GEOASCII_PAGINATE_PROMPT",
		"GEOASCII_OUTPUT_COLOR",
	} {
		// Setenv records the original value for restoration
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	return env
}

// WriteConfig writes the user config file (config.toml or config.yaml)
func (env *TestEnvironment) WriteConfig(name, content string) string {
	env.t.Helper()
	return WriteFile(env.t, filepath.Join(env.ConfigDir, "geoascii"), name, content)
}

// WriteData writes a data file under the environment's data directory
func (env *TestEnvironment) WriteData(name, content string) string {
	env.t.Helper()
	return WriteFile(env.t, env.DataDir, name, content)
}

// LogFile is where the logger writes inside this environment
func (env *TestEnvironment) LogFile() string {
	return filepath.Join(env.StateDir, "geoascii", "geoascii.log")
}
