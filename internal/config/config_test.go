package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lazyfm/internal/theme"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, theme.DraculaName, cfg.Theme)
	assert.True(t, cfg.ShowIcons)
	assert.True(t, cfg.HumanSizes)
	assert.False(t, cfg.ConfirmDelete)
	assert.Equal(t, 5, cfg.FlashTimeoutSeconds)
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, theme.DraculaName, cfg.Theme)
}

func TestLoadConfigExplicitMissingFileIsAnError(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigParsesServersAndOptions(t *testing.T) {
	path := writeConfig(t, `
servers:
  home:
    url: https://files.example.com
    token: tok123
  nas:
    url: http://nas.local:8080
default_server: home
theme: nord
show_icons: false
confirm_delete: true
flash_timeout_seconds: 2
`)

	cfg, usedPath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, usedPath)
	assert.Equal(t, "nord", cfg.Theme)
	assert.False(t, cfg.ShowIcons)
	assert.True(t, cfg.ConfirmDelete)
	assert.Equal(t, 2, cfg.FlashTimeoutSeconds)

	name, srv, err := cfg.Server("")
	require.NoError(t, err)
	assert.Equal(t, "home", name)
	assert.Equal(t, "https://files.example.com", srv.URL)
	assert.Equal(t, "tok123", srv.Token)
}

func TestLoadConfigUnknownThemeFallsBack(t *testing.T) {
	path := writeConfig(t, "theme: does-not-exist\n")
	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, theme.DraculaName, cfg.Theme)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "servers: [not: a: map\n")
	_, _, err := LoadConfig(path)
	require.Error(t, err)
}

func TestServerResolution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Servers = map[string]*ServerConfig{
		"only": {URL: "http://one.local"},
	}

	// A sole server is picked without default_server.
	name, _, err := cfg.Server("")
	require.NoError(t, err)
	assert.Equal(t, "only", name)

	// Explicit names must exist.
	_, _, err = cfg.Server("missing")
	require.Error(t, err)

	// Ambiguity with no default is an error.
	cfg.Servers["second"] = &ServerConfig{URL: "http://two.local"}
	_, _, err = cfg.Server("")
	require.Error(t, err)

	// URL is mandatory.
	cfg.Servers["broken"] = &ServerConfig{}
	_, _, err = cfg.Server("broken")
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/logs/lazyfm.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "lazyfm.log"), got)

	got, err = ExpandPath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/lazyfm", ConfigDir())
}
