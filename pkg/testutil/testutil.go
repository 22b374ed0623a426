// Package testutil provides disposable on-disk fixtures for dotgen
// tests. Everything lives under t.TempDir and is cleaned up by the
// testing framework.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/dotgen/pkg/paths"
)

// Env is a disposable templates root plus config dir, with the
// relevant environment variables pointed at them.
type Env struct {
	Root      string
	ConfigDir string
	Paths     paths.Paths
}

// NewEnv builds a fresh Env and neutralizes ambient dotgen
// environment variables so tests are hermetic.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	configDir := t.TempDir()
	t.Setenv(paths.EnvDotgenConfigDir, configDir)
	t.Setenv("DOTGEN_MACHINE_TYPE", "")

	p, err := paths.New(root)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(p.TemplatesDir(), 0755))

	return &Env{Root: root, ConfigDir: configDir, Paths: p}
}

// WriteTemplate creates a template file and returns its path.
func (e *Env) WriteTemplate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.Paths.TemplatesDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteSharedConfig creates the shared dotgen.toml in the root.
func (e *Env) WriteSharedConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.Paths.SharedConfigPath(), []byte(content), 0644))
}

// WriteLocalConfig creates the local override file in the config dir.
func (e *Env) WriteLocalConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.ConfigDir, "local.toml"), []byte(content), 0644))
}

// ReadOutput reads a materialized output by template name.
func (e *Env) ReadOutput(t *testing.T, templateName string) string {
	t.Helper()
	data, err := os.ReadFile(e.Paths.OutputPath(templateName))
	require.NoError(t, err)
	return string(data)
}
