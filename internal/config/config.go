package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config represents the draftbridge configuration
type Config struct {
	LogFile      string `yaml:"log_file"`
	WordWrap     int    `yaml:"word_wrap"`
	PreviewChars int    `yaml:"preview_chars"`
	Audience     string `yaml:"audience"`
	TrackState   bool   `yaml:"track_state"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		LogFile:      filepath.Join(xdg.StateHome, "draftbridge", "draftbridge.log"),
		WordWrap:     100,
		PreviewChars: 300,
		Audience:     "everyone",
		TrackState:   true,
	}
}

// ConfigPath returns the path to the config file.
// Can be overridden for testing
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "draftbridge", "config.yaml")
}

// StateFilePath returns the path to the drafted-articles state file.
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "draftbridge", "state.json")
}

// Load reads configuration from the XDG config directory.
// Fields missing from the file keep their defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the XDG config directory
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.WordWrap <= 0 {
		return fmt.Errorf("word_wrap must be positive")
	}
	if c.PreviewChars < 0 {
		return fmt.Errorf("preview_chars cannot be negative")
	}

	validAudiences := map[string]bool{
		"everyone":  true,
		"only_paid": true,
		"founding":  true,
		"only_free": true,
	}
	if !validAudiences[c.Audience] {
		return fmt.Errorf("invalid audience '%s': must be one of: everyone, only_paid, founding, only_free", c.Audience)
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = ExpandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory and converts to absolute path
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	return filepath.Abs(path)
}
