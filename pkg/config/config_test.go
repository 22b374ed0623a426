package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/dotgen/pkg/paths"
)

// newTestPaths builds a Paths rooted in temp dirs, with the config
// dir redirected so local override files can be planted.
func newTestPaths(t *testing.T) (paths.Paths, string, string) {
	t.Helper()
	root := t.TempDir()
	configDir := t.TempDir()
	t.Setenv(paths.EnvDotgenConfigDir, configDir)
	t.Setenv("DOTGEN_MACHINE_TYPE", "")

	p, err := paths.New(root)
	require.NoError(t, err)
	return p, root, configDir
}

func TestLoad_EmbeddedDefaultsOnly(t *testing.T) {
	p, _, _ := newTestPaths(t)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "unknown", cfg.MachineType)
	assert.True(t, cfg.Flags["render"])
	assert.Empty(t, cfg.Defaults)
	assert.Empty(t, cfg.Local)
}

func TestLoad_SharedConfig(t *testing.T) {
	p, root, _ := newTestPaths(t)

	shared := `
[variables]
editor = "vim"
git_email = "me@example.com"

[machine.work.variables]
git_email = "me@corp.example.com"

[machine.personal.variables]
git_email = "me@home.example.com"

[arrays]
ssh_hosts = ["github|github.com|git|~/.ssh/id|"]

[schemas]
ssh_hosts = "name|hostname|user|identity|extra"

[flags]
render = false
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "dotgen.toml"), []byte(shared), 0644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "vim", cfg.Defaults["editor"])
	assert.Equal(t, "me@corp.example.com", cfg.MachineVars["work"]["git_email"])
	assert.Equal(t, "me@home.example.com", cfg.MachineVars["personal"]["git_email"])
	assert.Equal(t, []string{"github|github.com|git|~/.ssh/id|"}, cfg.Arrays["ssh_hosts"])
	assert.Equal(t, "name|hostname|user|identity|extra", cfg.Schemas["ssh_hosts"])
	assert.False(t, cfg.Flags["render"])
}

func TestLoad_LocalOverrideToml(t *testing.T) {
	p, _, configDir := newTestPaths(t)

	local := `
[machine]
type = "work"

[variables]
editor = "emacs"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "local.toml"), []byte(local), 0644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "work", cfg.MachineType)
	assert.Equal(t, "emacs", cfg.Local["editor"])
}

func TestLoad_LocalOverrideYaml(t *testing.T) {
	p, _, configDir := newTestPaths(t)

	local := `
machine:
  type: personal
variables:
  editor: nano
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "local.yaml"), []byte(local), 0644))

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "personal", cfg.MachineType)
	assert.Equal(t, "nano", cfg.Local["editor"])
}

func TestLoad_EnvMachineTypeWins(t *testing.T) {
	p, _, configDir := newTestPaths(t)

	local := "[machine]\ntype = \"work\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "local.toml"), []byte(local), 0644))
	t.Setenv("DOTGEN_MACHINE_TYPE", "personal")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "personal", cfg.MachineType)
}

func TestLoad_MalformedShared(t *testing.T) {
	p, root, _ := newTestPaths(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "dotgen.toml"), []byte("not [valid toml"), 0644))

	_, err := Load(p)
	assert.Error(t, err)
}

func TestStarterRoundTrip(t *testing.T) {
	p, root, _ := newTestPaths(t)

	require.NoError(t, WriteStarter(p.SharedConfigPath()))
	assert.FileExists(t, filepath.Join(root, "dotgen.toml"))

	// A generated starter must load cleanly through the same loader.
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "vim", cfg.Defaults["editor"])
	assert.Equal(t, "you@work.example.com", cfg.MachineVars["work"]["git_email"])
	assert.NotEmpty(t, cfg.Arrays["ssh_hosts"])
	assert.True(t, cfg.Flags["render"])

	// Refuses to overwrite
	assert.Error(t, WriteStarter(p.SharedConfigPath()))
}
