// Package memory provides in-memory implementations of storage ports,
// used in tests and single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/modgate/modgate/domain/guild"
	"github.com/modgate/modgate/ports"
)

// GuildConfigStore is an in-memory implementation of ports.GuildConfigStore.
type GuildConfigStore struct {
	mu      sync.RWMutex
	configs map[string]guild.Config
}

// NewGuildConfigStore creates an empty in-memory guild config store.
func NewGuildConfigStore() *GuildConfigStore {
	return &GuildConfigStore{configs: make(map[string]guild.Config)}
}

// Get retrieves a guild's configuration. An unconfigured guild gets the
// documented defaults.
func (s *GuildConfigStore) Get(_ context.Context, guildID string) (guild.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[guildID]
	if !ok {
		return guild.DefaultConfig(), nil
	}
	return cfg, nil
}

// Put stores a guild's configuration.
func (s *GuildConfigStore) Put(_ context.Context, guildID string, cfg guild.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[guildID] = cfg
	return nil
}

// Ensure interface compliance.
var _ ports.GuildConfigStore = (*GuildConfigStore)(nil)
