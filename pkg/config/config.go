// Package config loads and persists shared defaults for the browser,
// dataset and logging facades from an optional YAML file. Scripts that
// are happy with the built-in defaults never need it; those that want a
// project-wide settings file load one Config and feed its sections into
// the facade Options.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BrowserSection holds browser manager defaults.
type BrowserSection struct {
	Headless    bool     `yaml:"headless"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	UserAgent   string   `yaml:"user_agent,omitempty"`
	WaitSeconds int      `yaml:"wait_seconds"`
	ExtraArgs   []string `yaml:"extra_args,omitempty"`
}

// DataSection holds tabular facade defaults.
type DataSection struct {
	OutputDir string `yaml:"output_dir"`
}

// LoggingSection holds logger registry defaults.
type LoggingSection struct {
	Dir        string `yaml:"dir"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Config is the full defaults file.
type Config struct {
	Browser BrowserSection `yaml:"browser"`
	Data    DataSection    `yaml:"data"`
	Logging LoggingSection `yaml:"logging"`
}

// Default returns the built-in defaults, matching what each facade
// resolves on its own when handed a zero Options value.
func Default() *Config {
	return &Config{
		Browser: BrowserSection{
			Headless:    true,
			Width:       1920,
			Height:      1080,
			WaitSeconds: 10,
		},
		Data: DataSection{
			OutputDir: "exports",
		},
		Logging: LoggingSection{
			Dir:        "logs",
			Level:      "info",
			Format:     "detailed",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
	}
}

// Load reads a config file. A missing file is not an error: the
// built-in defaults are returned so a settings file stays optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories when
// needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
