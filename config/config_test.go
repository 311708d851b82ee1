package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modgate/modgate/domain/moderation"
	"github.com/modgate/modgate/domain/tier"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modgate.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
classifier:
  url: http://classifier:9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Classifier.Timeout != 15*time.Second {
		t.Errorf("Classifier.Timeout = %v", cfg.Classifier.Timeout)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "modgate.db" {
		t.Errorf("store defaults = %+v", cfg.Store)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if cfg.Alerts.Name != "modgate" || cfg.Alerts.ReconnectWait != 2*time.Second {
		t.Errorf("alerts defaults = %+v", cfg.Alerts)
	}
}

func TestLoadRequiresClassifierURL(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
`)
	if _, err := Load(path); err == nil {
		t.Errorf("missing classifier.url accepted")
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	path := writeConfig(t, `
classifier:
  url: http://classifier:9000
store:
  driver: cassandra
`)
	if _, err := Load(path); err == nil {
		t.Errorf("unknown store driver accepted")
	}
}

func TestLoadRejectsBadTierOverride(t *testing.T) {
	path := writeConfig(t, `
classifier:
  url: http://classifier:9000
tiers:
  - id: platinum
    monthly_credits: 100
`)
	if _, err := Load(path); err == nil {
		t.Errorf("unknown tier accepted")
	}

	path = writeConfig(t, `
classifier:
  url: http://classifier:9000
tiers:
  - id: free
    allowed_models: [oracle]
`)
	if _, err := Load(path); err == nil {
		t.Errorf("unknown model accepted")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
classifier:
  url: http://from-file:9000
logging:
  level: info
`)

	t.Setenv("MODGATE_CLASSIFIER_URL", "http://from-env:9000")
	t.Setenv("MODGATE_LOG_LEVEL", "debug")
	t.Setenv("MODGATE_METRICS_ENABLED", "yes")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Classifier.URL != "http://from-env:9000" {
		t.Errorf("env override lost: %q", cfg.Classifier.URL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Errorf("Metrics.Enabled not set from env")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MODGATE_CLASSIFIER_URL", "http://classifier:9000")
	t.Setenv("MODGATE_STORE_DRIVER", "memory")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Classifier.URL != "http://classifier:9000" || cfg.Store.Driver != "memory" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadWithFallback(t *testing.T) {
	// No file, no env: error.
	if _, err := LoadWithFallback(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error with no config source")
	}

	// Env present: falls back to env.
	t.Setenv("MODGATE_CLASSIFIER_URL", "http://classifier:9000")
	cfg, err := LoadWithFallback("")
	if err != nil {
		t.Fatalf("LoadWithFallback: %v", err)
	}
	if cfg.Classifier.URL != "http://classifier:9000" {
		t.Errorf("URL = %q", cfg.Classifier.URL)
	}
}

func TestPlansMergesOverrides(t *testing.T) {
	cfg := &Config{
		Tiers: []TierConfig{
			{ID: "starter", MonthlyCredits: 750_000, AllowedModels: []string{"observer", "sentinel", "arbiter"}},
		},
	}

	plans, err := cfg.Plans()
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}

	byTier := make(map[tier.Tier]tier.Plan, len(plans))
	for _, p := range plans {
		byTier[p.Tier] = p
	}

	starter := byTier[tier.Starter]
	if starter.MonthlyCredits != 750_000 {
		t.Errorf("starter credits = %d", starter.MonthlyCredits)
	}
	if len(starter.AllowedModels) != 3 || starter.AllowedModels[2] != moderation.ModelArbiter {
		t.Errorf("starter models = %v", starter.AllowedModels)
	}

	// Untouched tiers keep catalog grants.
	free := byTier[tier.Free]
	if free.MonthlyCredits != 50_000 || len(free.AllowedModels) != 1 {
		t.Errorf("free plan changed: %+v", free)
	}
}

func TestExpandEnvInFile(t *testing.T) {
	t.Setenv("CLASSIFIER_KEY", "sk-test")
	path := writeConfig(t, `
classifier:
  url: http://classifier:9000
  api_key: ${CLASSIFIER_KEY}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Classifier.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.Classifier.APIKey)
	}
}
