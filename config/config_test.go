package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "deal-calculator", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 10_000, cfg.Cache.MaxEntries)
	assert.Equal(t, 30, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 1000, cfg.MonteCarlo.DefaultTrials)
	assert.Equal(t, 0.2, cfg.MonteCarlo.Volatility)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEAL_SERVER_PORT", "9090")
	t.Setenv("DEAL_LOGGING_LEVEL", "debug")
	t.Setenv("DEAL_REDIS_ENABLED", "true")
	t.Setenv("DEAL_REDIS_ADDRESS", "redis:6379")
	t.Setenv("DEAL_REDIS_TTL", "10m")
	t.Setenv("DEAL_MONTE_CARLO_DEFAULT_TRIALS", "250")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 250, cfg.MonteCarlo.DefaultTrials)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 7000
logging:
  format: json
rate_limit:
  capacity: 5
  window: 30s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DEAL_LOGGING_LEVEL", "loud")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: 8080},
			Logging:    LoggingConfig{Level: "info", Format: "console"},
			Cache:      CacheConfig{MaxEntries: 10},
			RateLimit:  RateLimitConfig{Capacity: 1, Window: time.Second},
			MonteCarlo: MonteCarloConfig{DefaultTrials: 10, MaxTrials: 100, Volatility: 0.2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"redis without address", func(c *Config) { c.Redis.Enabled = true }, true},
		{"zero cache entries", func(c *Config) { c.Cache.MaxEntries = 0 }, true},
		{"zero capacity", func(c *Config) { c.RateLimit.Capacity = 0 }, true},
		{"default above max", func(c *Config) { c.MonteCarlo.DefaultTrials = 1000 }, true},
		{"zero volatility", func(c *Config) { c.MonteCarlo.Volatility = 0 }, true},
		{"max above engine cap", func(c *Config) { c.MonteCarlo.MaxTrials = 200_000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
