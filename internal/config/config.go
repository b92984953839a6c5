// Package config provides Viper-based configuration management for kwgrep
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete kwgrep configuration
type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	Workers WorkersConfig `mapstructure:"workers"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// SearchConfig describes what to search and where
type SearchConfig struct {
	Root       string   `mapstructure:"root"`
	Keywords   []string `mapstructure:"keywords"`
	Extensions []string `mapstructure:"extensions"`
}

// WorkersConfig sets worker counts per strategy. Zero means the host CPU count.
type WorkersConfig struct {
	Shared   int `mapstructure:"shared"`
	Isolated int `mapstructure:"isolated"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// MetricsConfig controls the Prometheus text dump written after a run
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// DefaultKeywords are searched when none are configured or given on the command line.
var DefaultKeywords = []string{"python", "multiprocessing", "logging", "event", "thread"}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".kwgrep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kwgrep")
	}

	v.SetEnvPrefix("KWGREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.root", "data")
	v.SetDefault("search.keywords", DefaultKeywords)
	v.SetDefault("search.extensions", []string{".txt"})

	v.SetDefault("workers.shared", 4)
	v.SetDefault("workers.isolated", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)

	v.SetDefault("metrics.file", "")
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Workers.Shared < 0 {
		return fmt.Errorf("invalid shared worker count: %d (must be >= 0)", c.Workers.Shared)
	}
	if c.Workers.Isolated < 0 {
		return fmt.Errorf("invalid isolated worker count: %d (must be >= 0)", c.Workers.Isolated)
	}

	if len(c.Search.Extensions) == 0 {
		return fmt.Errorf("at least one search extension is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}

// CheckRoot verifies that the search root is an existing directory
func (c *Config) CheckRoot() error {
	info, err := os.Stat(c.Search.Root)
	if err != nil {
		return fmt.Errorf("search root %s: %w", c.Search.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("search root %s is not a directory", c.Search.Root)
	}
	return nil
}
