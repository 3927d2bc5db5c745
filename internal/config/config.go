// Package config loads the lazyfm configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lazyfm/internal/theme"
	"gopkg.in/yaml.v3"
)

// ServerConfig describes one file-manager server profile.
type ServerConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// AppConfig defines the global lazyfm configuration options.
type AppConfig struct {
	Servers       map[string]*ServerConfig `yaml:"servers"`
	DefaultServer string                   `yaml:"default_server"`

	Theme      string `yaml:"theme"`      // Theme name: see AvailableThemes in internal/theme
	ShowIcons  bool   `yaml:"show_icons"` // Render Nerd Font icons in the listing (default: true)
	HumanSizes bool   `yaml:"human_sizes"`

	ConfirmDelete       bool   `yaml:"confirm_delete"` // Ask before delete; default off, delete is optimistic
	FlashTimeoutSeconds int    `yaml:"flash_timeout_seconds"`
	RequestTimeoutSecs  int    `yaml:"request_timeout_seconds"`
	DebugLog            string `yaml:"debug_log"`
	Opener              string `yaml:"opener"` // Command used to open download URLs (default: xdg-open/open)
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Servers:             map[string]*ServerConfig{},
		Theme:               theme.DraculaName,
		ShowIcons:           true,
		HumanSizes:          true,
		ConfirmDelete:       false,
		FlashTimeoutSeconds: 5,
		RequestTimeoutSecs:  30,
	}
}

// ConfigDir returns the directory holding the lazyfm configuration.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lazyfm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lazyfm"
	}
	return filepath.Join(home, ".config", "lazyfm")
}

// DefaultPaths lists the config file locations probed when no explicit path
// is given.
func DefaultPaths() []string {
	base := ConfigDir()
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
	}
}

// LoadConfig loads the configuration from configPath, or from the default
// locations when configPath is empty. A missing file yields the defaults.
// The second return value is the path the config was read from, empty when
// defaults were used.
func LoadConfig(configPath string) (*AppConfig, string, error) {
	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), "", err
		}
		paths = []string{expanded}
	} else {
		paths = DefaultPaths()
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return DefaultConfig(), "", err
		}

		cfg := DefaultConfig()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return DefaultConfig(), "", fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.normalize()
		return cfg, path, nil
	}

	if configPath != "" {
		return DefaultConfig(), "", fmt.Errorf("config file not found: %s", configPath)
	}
	return DefaultConfig(), "", nil
}

func (c *AppConfig) normalize() {
	if c.Servers == nil {
		c.Servers = map[string]*ServerConfig{}
	}
	if c.FlashTimeoutSeconds <= 0 {
		c.FlashTimeoutSeconds = 5
	}
	if c.RequestTimeoutSecs <= 0 {
		c.RequestTimeoutSecs = 30
	}
	found := false
	for _, name := range theme.AvailableThemes() {
		if c.Theme == name {
			found = true
			break
		}
	}
	if !found {
		c.Theme = theme.DraculaName
	}
}

// Server resolves the server profile for name. An empty name resolves to
// default_server, or to the sole configured server when only one exists.
func (c *AppConfig) Server(name string) (string, *ServerConfig, error) {
	if name == "" {
		name = c.DefaultServer
	}
	if name == "" && len(c.Servers) == 1 {
		for only := range c.Servers {
			name = only
		}
	}
	if name == "" {
		return "", nil, fmt.Errorf("no server selected: set default_server or pass --server")
	}
	srv, ok := c.Servers[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown server %q", name)
	}
	if srv.URL == "" {
		return "", nil, fmt.Errorf("server %q has no url", name)
	}
	return name, srv, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
