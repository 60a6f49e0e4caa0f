package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// limits
	LoginRateLimitAllowedPerMin   int `toml:"login_rate_limit_allowed_per_min"`
	SessionRateLimitAllowedPerMin int `toml:"session_rate_limit_allowed_per_min"`
	// workout session
	SessionTickInterval  Duration `toml:"session_tick_interval"`
	HistoryLookback      int      `toml:"history_lookback"`
	FreeTierRoutineLimit int      `toml:"free_tier_routine_limit"`
	CatalogCacheSizeMB   int      `toml:"catalog_cache_size_mb"`
}

// Duration lets durations be written as "1s", "500ms" in the TOML file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied to the unset workout session values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New("config section for env not found: " + env)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.SessionTickInterval.Duration <= 0 {
		c.SessionTickInterval.Duration = time.Second
	}
	if c.HistoryLookback <= 0 {
		c.HistoryLookback = 15
	}
	if c.FreeTierRoutineLimit <= 0 {
		c.FreeTierRoutineLimit = 3
	}
	if c.CatalogCacheSizeMB <= 0 {
		c.CatalogCacheSizeMB = 10
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.SessionRateLimitAllowedPerMin <= 0 {
		c.SessionRateLimitAllowedPerMin = 600
	}
}
