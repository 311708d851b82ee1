// Package bootstrap wires the configured adapters into a ready
// moderation service. Host processes embed it instead of assembling
// stores, classifier and alert fan-out by hand.
package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/modgate/modgate/adapters/alerts"
	"github.com/modgate/modgate/adapters/classifier"
	"github.com/modgate/modgate/adapters/clock"
	"github.com/modgate/modgate/adapters/idgen"
	"github.com/modgate/modgate/adapters/memory"
	"github.com/modgate/modgate/adapters/metrics"
	"github.com/modgate/modgate/adapters/redisstore"
	"github.com/modgate/modgate/adapters/sqlite"
	"github.com/modgate/modgate/app"
	"github.com/modgate/modgate/config"
	"github.com/modgate/modgate/ports"
)

// App holds the wired moderation service and the resources behind it.
type App struct {
	Logger     zerolog.Logger
	Moderation *app.ModerationService
	Metrics    *metrics.Collector

	db        *sqlite.DB
	redis     *redis.Client
	publisher *alerts.Publisher
}

// New wires an application from configuration.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)
	logger.Info().Str("store", cfg.Store.Driver).Msg("initializing modgate")

	a := &App{Logger: logger}

	configs, credits, err := a.initStores(cfg)
	if err != nil {
		return nil, err
	}

	cls, err := classifier.New(classifier.Options{
		BaseURL: cfg.Classifier.URL,
		APIKey:  cfg.Classifier.APIKey,
		Timeout: cfg.Classifier.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init classifier: %w", err)
	}

	var publisher ports.AlertPublisher
	if cfg.Alerts.Enabled {
		p, err := alerts.New(alerts.Options{
			URL:           cfg.Alerts.URL,
			Name:          cfg.Alerts.Name,
			ReconnectWait: cfg.Alerts.ReconnectWait,
			MaxReconnects: -1,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init alert publisher: %w", err)
		}
		a.publisher = p
		publisher = p
		logger.Info().Str("url", cfg.Alerts.URL).Msg("alert fan-out enabled")
	}

	var sink ports.MetricsSink
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		sink = a.Metrics
		logger.Info().Msg("prometheus metrics enabled")
	}

	plans, err := cfg.Plans()
	if err != nil {
		return nil, fmt.Errorf("resolve tier plans: %w", err)
	}

	a.Moderation = app.NewModerationService(app.ModerationDeps{
		Configs:    configs,
		Credits:    credits,
		Classifier: cls,
		Alerts:     publisher,
		Metrics:    sink,
		Clock:      clock.Real{},
		IDGen:      idgen.UUID{},
		Plans:      plans,
	}, logger)

	return a, nil
}

func (a *App) initStores(cfg *config.Config) (ports.GuildConfigStore, ports.CreditStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		return memory.NewGuildConfigStore(), memory.NewCreditStore(), nil

	case "sqlite":
		db, err := sqlite.Open(cfg.Store.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		a.db = db
		return sqlite.NewGuildConfigStore(db), sqlite.NewCreditStore(db), nil

	case "redis":
		// Guild configs stay in SQLite; only the contended credit
		// balances move to the shared Redis instance.
		db, err := sqlite.Open(cfg.Store.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		a.db = db

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.redis = client
		return sqlite.NewGuildConfigStore(db), redisstore.NewCreditStore(client), nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Close releases the database, Redis and NATS resources.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("close redis")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("close database")
		}
	}
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
