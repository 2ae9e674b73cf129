// Package config loads the service configuration from defaults, an optional
// config file, a .env file and DEAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "DEAL"

	// maxMonteCarloTrials mirrors the hard cap of the sampling engine.
	maxMonteCarloTrials = 100_000
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	MonteCarlo MonteCarloConfig `mapstructure:"monte_carlo"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CacheConfig bounds the in-memory cache used when Redis is disabled. Entries
// share redis.ttl.
type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

type RateLimitConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

type MonteCarloConfig struct {
	DefaultTrials int     `mapstructure:"default_trials"`
	MaxTrials     int     `mapstructure:"max_trials"`
	Volatility    float64 `mapstructure:"volatility"`
	Workers       int     `mapstructure:"workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads the configuration. configPaths are searched for config.yaml in
// order; when none is found the defaults and environment are used.
func Load(configPaths ...string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"./configs", "."}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "deal-calculator")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", time.Hour)

	v.SetDefault("cache.max_entries", 10_000)

	v.SetDefault("rate_limit.capacity", 30)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("monte_carlo.default_trials", 1000)
	v.SetDefault("monte_carlo.max_trials", 20000)
	v.SetDefault("monte_carlo.volatility", 0.2)
	v.SetDefault("monte_carlo.workers", 8)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported logging.format %q", c.Logging.Format)
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis.address is required when redis is enabled")
	}
	if c.Cache.MaxEntries <= 0 {
		return errors.New("cache.max_entries must be positive")
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.capacity and rate_limit.window must be positive")
	}
	if c.MonteCarlo.MaxTrials <= 0 || c.MonteCarlo.DefaultTrials <= 0 {
		return errors.New("monte_carlo trial counts must be positive")
	}
	if c.MonteCarlo.MaxTrials > maxMonteCarloTrials {
		return fmt.Errorf("monte_carlo.max_trials must not exceed %d", maxMonteCarloTrials)
	}
	if c.MonteCarlo.DefaultTrials > c.MonteCarlo.MaxTrials {
		return fmt.Errorf("monte_carlo.default_trials (%d) exceeds max_trials (%d)",
			c.MonteCarlo.DefaultTrials, c.MonteCarlo.MaxTrials)
	}
	if c.MonteCarlo.Volatility <= 0 {
		return errors.New("monte_carlo.volatility must be positive")
	}
	return nil
}
