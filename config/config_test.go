package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/riskbot/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.True(t, cfg.Defaults.Empty())
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name: "seeded defaults",
			mutate: func(c *Config) {
				c.Defaults = profile.Profile{Capital: fp(1000), RiskPercent: fp(1), Leverage: fp(10), FeeBps: fp(0)}
			},
		},
		{
			name:    "negative capital",
			mutate:  func(c *Config) { c.Defaults.Capital = fp(-1) },
			wantErr: true,
			errMsg:  "defaults.capital must not be negative",
		},
		{
			name:    "zero leverage",
			mutate:  func(c *Config) { c.Defaults.Leverage = fp(0) },
			wantErr: true,
			errMsg:  "defaults.leverage must be positive",
		},
		{
			name:    "negative fee",
			mutate:  func(c *Config) { c.Defaults.FeeBps = fp(-0.5) },
			wantErr: true,
			errMsg:  "defaults.fee_bps must not be negative",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Journal.Type = "sqlite" },
			wantErr: true,
			errMsg:  "journal.path required",
		},
		{
			name:    "unknown journal",
			mutate:  func(c *Config) { c.Journal = JournalConfig{Type: "kafka", Path: "x"} },
			wantErr: true,
			errMsg:  "journal.type must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Defaults.Capital = fp(2500)
			cfg.Defaults.RiskPercent = fp(0.5)
			cfg.Journal = JournalConfig{Type: "sqlite", Path: "riskbot.db"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			require.NotNil(t, loaded.Defaults.Capital)
			assert.Equal(t, 2500.0, *loaded.Defaults.Capital)
			assert.Equal(t, 0.5, *loaded.Defaults.RiskPercent)
			assert.Nil(t, loaded.Defaults.Leverage)
			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Log, loaded.Log)
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  capital: 1000
  risk_percent: 1
  fee_bps: 5
log:
  level: debug
journal:
  type: csv
  path: journal.csv
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, *cfg.Defaults.Capital)
	assert.Equal(t, 5.0, *cfg.Defaults.FeeBps)
	assert.Equal(t, "debug", cfg.Log.Level)
	// unset keys keep their defaults
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvMetricsAddr, ":9191")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, ":9191", cfg.Metrics.Addr)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	_, err = Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}
