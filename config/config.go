package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/riskbot/logging"
	"github.com/rustyeddy/riskbot/profile"
	"gopkg.in/yaml.v3"
)

// Environment overrides, also read from a .env file in the working directory.
const (
	EnvLogLevel    = "RISKBOT_LOG_LEVEL"
	EnvJournalType = "RISKBOT_JOURNAL_TYPE"
	EnvJournalPath = "RISKBOT_JOURNAL_PATH"
	EnvMetricsAddr = "RISKBOT_METRICS_ADDR"
)

// Config represents the complete riskbot configuration
type Config struct {
	// Defaults seeds the profile of every user seen for the first time.
	Defaults profile.Profile `json:"defaults" yaml:"defaults"`
	Log      logging.Config  `json:"log" yaml:"log"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
	Metrics  MetricsConfig   `json:"metrics" yaml:"metrics"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// MetricsConfig enables the prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // e.g. ":9090"
}

// Load returns Default() when path is empty, otherwise the parsed file.
// Environment overrides are applied last and the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = parseFile(path); err != nil {
			return nil, err
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvJournalType); v != "" {
		c.Journal.Type = v
	}
	if v := os.Getenv(EnvJournalPath); v != "" {
		c.Journal.Path = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.Metrics.Addr = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	d := c.Defaults
	if d.Capital != nil && *d.Capital < 0 {
		return fmt.Errorf("defaults.capital must not be negative")
	}
	if d.Leverage != nil && *d.Leverage <= 0 {
		return fmt.Errorf("defaults.leverage must be positive")
	}
	if d.FeeBps != nil && *d.FeeBps < 0 {
		return fmt.Errorf("defaults.fee_bps must not be negative")
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text", "console":
	default:
		return fmt.Errorf("log.format must be 'json' or 'text'")
	}

	switch strings.ToLower(c.Journal.Type) {
	case "", "none":
	case "csv", "sqlite":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s journal", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Log: logging.Config{
			Level:  "warn",
			Format: "text",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
