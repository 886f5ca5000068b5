// Package config loads and saves ytsubsdown settings from the user
// config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yml"
	appDirName     = "ytsubsdown"
)

// Config holds user settings.
type Config struct {
	// ServerAddr is the base URL of a remote subtitle API. When set,
	// the CLI talks to it instead of scraping YouTube directly.
	ServerAddr string `yaml:"server_addr,omitempty"`
	// Port is the listen port for `ytsubsdown serve`.
	Port int `yaml:"port"`
	// OutputDir is where downloaded SRT files are written.
	OutputDir string `yaml:"output_dir"`
	// Language preselects a track language code in non-interactive mode.
	Language string `yaml:"language,omitempty"`
	// IncludeMetadata controls whether the metadata header is prepended.
	IncludeMetadata bool `yaml:"include_metadata"`
	// History enables the server-side fetch history database.
	History bool `yaml:"history"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Port:            8080,
		OutputDir:       ".",
		IncludeMetadata: true,
		History:         true,
	}
}

// ConfigDir returns the directory holding the config file and the
// history database.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// SavePath returns the full path of the config file.
func SavePath() string {
	dir, err := ConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, configFileName)
}

// Exists reports whether a config file has been written.
func Exists() bool {
	_, err := os.Stat(SavePath())
	return err == nil
}

// Load reads the config file.
func Load() (Config, error) {
	data, err := os.ReadFile(SavePath())
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config file, falling back to defaults when
// it is missing or unreadable.
func LoadOrDefault() Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes the config file, creating the config directory first.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, configFileName), data, 0600)
}
