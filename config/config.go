// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/modgate/modgate/domain/moderation"
	"github.com/modgate/modgate/domain/tier"
)

// Config is the root configuration structure.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Store      StoreConfig      `yaml:"store"`
	Redis      RedisConfig      `yaml:"redis"`
	Alerts     AlertsConfig     `yaml:"alerts"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tiers      []TierConfig     `yaml:"tiers"`
}

// ClassifierConfig configures the external classification service.
type ClassifierConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig configures guild config and credit persistence.
// Use "memory" for single-node tests, "sqlite" for single-node
// deployments, or "redis" to share credit state across nodes.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "memory", "sqlite" or "redis"
	DSN    string `yaml:"dsn"`    // sqlite file path
}

// RedisConfig configures the shared Redis instance.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
}

// AlertsConfig configures the NATS alert fan-out.
type AlertsConfig struct {
	Enabled       bool          `yaml:"enabled"`
	URL           string        `yaml:"url"`
	Name          string        `yaml:"name"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // default: /metrics
}

// TierConfig overrides a tier's grants from the static catalog.
type TierConfig struct {
	ID             string   `yaml:"id"`
	MonthlyCredits int64    `yaml:"monthly_credits"`
	AllowedModels  []string `yaml:"allowed_models"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
// This is useful for Docker deployments where no config file is needed.
//
// Environment variables:
//
//	MODGATE_CLASSIFIER_URL     - Classifier base URL (required)
//	MODGATE_CLASSIFIER_API_KEY - Classifier API key
//	MODGATE_STORE_DRIVER       - Store driver: memory, sqlite or redis
//	MODGATE_STORE_DSN          - SQLite path (default: modgate.db)
//	MODGATE_REDIS_ADDR         - Redis address (default: localhost:6379)
//	MODGATE_ALERTS_ENABLED     - Enable NATS alert fan-out (default: false)
//	MODGATE_ALERTS_URL         - NATS URL (default: nats://localhost:4222)
//	MODGATE_LOG_LEVEL          - Log level (default: info)
//	MODGATE_LOG_FORMAT         - Log format: json or console (default: json)
//	MODGATE_METRICS_ENABLED    - Enable /metrics endpoint (default: true)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment
// variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	if os.Getenv("MODGATE_CLASSIFIER_URL") != "" {
		return LoadFromEnv()
	}

	return nil, fmt.Errorf("no configuration found: provide config file or set MODGATE_CLASSIFIER_URL")
}

// applyEnvOverrides applies MODGATE_* environment variables to the
// config. Environment variables always override file-based values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MODGATE_CLASSIFIER_URL"); v != "" {
		cfg.Classifier.URL = v
	}
	if v := os.Getenv("MODGATE_CLASSIFIER_API_KEY"); v != "" {
		cfg.Classifier.APIKey = v
	}
	if v := os.Getenv("MODGATE_CLASSIFIER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Classifier.Timeout = d
		}
	}

	if v := os.Getenv("MODGATE_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("MODGATE_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}

	if v := os.Getenv("MODGATE_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("MODGATE_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("MODGATE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}

	if v := os.Getenv("MODGATE_ALERTS_ENABLED"); v != "" {
		cfg.Alerts.Enabled = parseBool(v)
	}
	if v := os.Getenv("MODGATE_ALERTS_URL"); v != "" {
		cfg.Alerts.URL = v
	}

	if v := os.Getenv("MODGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MODGATE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("MODGATE_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("MODGATE_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Classifier.Timeout == 0 {
		cfg.Classifier.Timeout = 15 * time.Second
	}

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = "modgate.db"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}

	if cfg.Alerts.URL == "" {
		cfg.Alerts.URL = "nats://localhost:4222"
	}
	if cfg.Alerts.Name == "" {
		cfg.Alerts.Name = "modgate"
	}
	if cfg.Alerts.ReconnectWait == 0 {
		cfg.Alerts.ReconnectWait = 2 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if cfg.Classifier.URL == "" {
		return fmt.Errorf("classifier.url is required")
	}

	validDrivers := map[string]bool{"memory": true, "sqlite": true, "redis": true}
	if !validDrivers[cfg.Store.Driver] {
		return fmt.Errorf("store.driver must be 'memory', 'sqlite' or 'redis', got %q", cfg.Store.Driver)
	}

	for i, tc := range cfg.Tiers {
		if tc.ID == "" {
			return fmt.Errorf("tiers[%d].id is required", i)
		}
		if _, err := tier.ParseTier(tc.ID); err != nil {
			return fmt.Errorf("tiers[%d]: %w", i, err)
		}
		if tc.MonthlyCredits < 0 {
			return fmt.Errorf("tiers[%d].monthly_credits must not be negative", i)
		}
		for _, name := range tc.AllowedModels {
			if _, err := moderation.ParseModel(name); err != nil {
				return fmt.Errorf("tiers[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// Plans returns the tier catalog with any configured overrides applied.
// Tiers absent from the config keep their catalog grants.
func (c *Config) Plans() ([]tier.Plan, error) {
	overrides := make(map[tier.Tier]TierConfig, len(c.Tiers))
	for _, tc := range c.Tiers {
		t, err := tier.ParseTier(tc.ID)
		if err != nil {
			return nil, err
		}
		overrides[t] = tc
	}

	plans := tier.Catalog()
	for i, p := range plans {
		tc, ok := overrides[p.Tier]
		if !ok {
			continue
		}
		if tc.MonthlyCredits > 0 {
			plans[i].MonthlyCredits = tc.MonthlyCredits
		}
		if len(tc.AllowedModels) > 0 {
			models := make([]moderation.Model, 0, len(tc.AllowedModels))
			for _, name := range tc.AllowedModels {
				m, err := moderation.ParseModel(name)
				if err != nil {
					return nil, err
				}
				models = append(models, m)
			}
			plans[i].AllowedModels = models
		}
	}
	return plans, nil
}
