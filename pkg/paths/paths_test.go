package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ExplicitRoot(t *testing.T) {
	dir := t.TempDir()

	p, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root())
	assert.False(t, p.UsedFallback())
	assert.Equal(t, filepath.Join(dir, "templates"), p.TemplatesDir())
	assert.Equal(t, filepath.Join(dir, "generated"), p.GeneratedDir())
	assert.Equal(t, filepath.Join(dir, "dotgen.toml"), p.SharedConfigPath())
}

func TestNew_EnvRoot(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDotgenRoot, dir)

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root())
	assert.False(t, p.UsedFallback())
}

func TestNew_CwdFallback(t *testing.T) {
	t.Setenv(EnvDotgenRoot, "")

	p, err := New("")
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, p.Root())
	assert.True(t, p.UsedFallback())
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDotgenConfigDir, dir)

	p, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, dir, p.ConfigDir())
}

func TestLocalOverridePath(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv(EnvDotgenConfigDir, configDir)

	p, err := New(t.TempDir())
	require.NoError(t, err)

	// No file exists: stable toml default
	assert.Equal(t, filepath.Join(configDir, "local.toml"), p.LocalOverridePath())

	// yaml file exists: it wins over the missing toml
	yamlPath := filepath.Join(configDir, "local.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("variables: {}\n"), 0644))
	assert.Equal(t, yamlPath, p.LocalOverridePath())

	// toml file appears: toml is tried first
	tomlPath := filepath.Join(configDir, "local.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[variables]\n"), 0644))
	assert.Equal(t, tomlPath, p.LocalOverridePath())
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "generated", "gitconfig"), p.OutputPath("gitconfig.tmpl"))
	// Non-template names pass through unchanged
	assert.Equal(t, filepath.Join(dir, "generated", "README"), p.OutputPath("README"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "dotfiles"), expandHome("~/dotfiles"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "relative", expandHome("relative"))
}
