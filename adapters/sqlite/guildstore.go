package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modgate/modgate/domain/guild"
	"github.com/modgate/modgate/ports"
)

// GuildConfigStore implements ports.GuildConfigStore using SQLite.
// Configs are stored as JSON documents so schema additions never need
// a column migration.
type GuildConfigStore struct {
	db *DB
}

// NewGuildConfigStore creates a new SQLite guild config store.
func NewGuildConfigStore(db *DB) *GuildConfigStore {
	return &GuildConfigStore{db: db}
}

// Get retrieves a guild's configuration. Unknown guilds get defaults.
func (s *GuildConfigStore) Get(ctx context.Context, guildID string) (guild.Config, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT config FROM guild_configs WHERE guild_id = ?
	`, guildID)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return guild.DefaultConfig(), nil
	}
	if err != nil {
		return guild.Config{}, fmt.Errorf("query guild config: %w", err)
	}

	var cfg guild.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return guild.Config{}, fmt.Errorf("decode guild config %s: %w", guildID, err)
	}
	return cfg, nil
}

// Put stores a guild's configuration.
func (s *GuildConfigStore) Put(ctx context.Context, guildID string, cfg guild.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode guild config %s: %w", guildID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO guild_configs (guild_id, config, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			config = excluded.config,
			updated_at = excluded.updated_at
	`, guildID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store guild config: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ ports.GuildConfigStore = (*GuildConfigStore)(nil)
