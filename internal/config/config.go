// Package config manages gitnav configuration.
// Settings live in a TOML file inside the repository's git directory and can
// be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

const (
	ConfigFile   = "gitnav.toml"
	DatabaseFile = "gitnav.db"

	DefaultTimeFormat = "2006-01-02 15:04"
	DefaultLogLevel   = "warn"
)

// Environment variables overriding file settings
const (
	EnvTimeFormat = "GITNAV_TIME_FORMAT"
	EnvJournal    = "GITNAV_JOURNAL"
	EnvLogLevel   = "GITNAV_LOG_LEVEL"
)

// Config represents the gitnav configuration
type Config struct {
	TimeFormat string `toml:"time_format"` // Go reference layout for commit times
	Color      bool   `toml:"color"`
	Journal    bool   `toml:"journal"` // Record navigations in the journal database
	LogLevel   string `toml:"log_level"`
	path       string // path to the git directory
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		TimeFormat: DefaultTimeFormat,
		Color:      true,
		LogLevel:   DefaultLogLevel,
	}
}

// Load loads the configuration from gitDir. A missing file yields defaults.
// An empty gitDir (in-memory repository) also yields defaults.
func Load(gitDir string) (*Config, error) {
	cfg := Default()
	cfg.path = gitDir

	if gitDir != "" {
		data, err := os.ReadFile(filepath.Join(gitDir, ConfigFile))
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvTimeFormat); v != "" {
		c.TimeFormat = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvJournal); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvJournal, v, err)
		}
		c.Journal = enabled
	}
	return nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no git directory")
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(c.path, ConfigFile), data, 0644)
}

// GitDir returns the path to the git directory
func (c *Config) GitDir() string {
	return c.path
}

// DatabasePath returns the path to the journal database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.path, DatabaseFile)
}
