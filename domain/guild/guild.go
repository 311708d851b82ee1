// Package guild provides guild moderation configuration and the
// applicability filter that decides whether a message is in scope.
// All functions are pure.
package guild

import (
	"fmt"

	"github.com/modgate/modgate/domain/moderation"
)

// RoleFilterMode determines how the filtered role set is interpreted.
type RoleFilterMode string

const (
	// RoleFilterInclude moderates only authors holding a filtered role.
	RoleFilterInclude RoleFilterMode = "include"
	// RoleFilterExclude moderates everyone except authors holding a
	// filtered role.
	RoleFilterExclude RoleFilterMode = "exclude"
)

// ParseRoleFilterMode parses a role filter mode. Names are the lowercase
// wire form.
func ParseRoleFilterMode(s string) (RoleFilterMode, error) {
	switch RoleFilterMode(s) {
	case RoleFilterInclude, RoleFilterExclude:
		return RoleFilterMode(s), nil
	}
	return "", fmt.Errorf("%w: role filter mode %q", moderation.ErrUnknownVariant, s)
}

// String returns the lowercase wire form.
func (m RoleFilterMode) String() string {
	return string(m)
}

// Config is the per-guild moderation configuration (value type).
// It is owned by the persistence layer and passed in per decision; the
// core never caches or mutates it.
type Config struct {
	IsActive bool

	ModerateAllChannels bool
	ModeratedChannels   []string // channel IDs; meaningful only when ModerateAllChannels is false

	ModerateAllRoles bool
	RoleFilterMode   RoleFilterMode
	FilteredRoles    []string // role IDs

	EnabledLabels []moderation.Label
	Actions       []moderation.Action
	Model         moderation.Model

	AlertsChannel string // channel ID for alert fan-out; empty = none

	EnableContext       bool
	ContextHistoryCount int
}

// DefaultConfig returns the configuration a guild starts with: active,
// all channels moderated, exclude-mode role filter with an empty set
// (equivalent to moderating all roles), the default label set, a single
// delete action, the Observer model, and context gathering disabled.
func DefaultConfig() Config {
	return Config{
		IsActive:            true,
		ModerateAllChannels: true,
		ModerateAllRoles:    true,
		RoleFilterMode:      RoleFilterExclude,
		EnabledLabels:       moderation.DefaultLabels(),
		Actions:             []moderation.Action{moderation.ActionDelete},
		Model:               moderation.ModelObserver,
		ContextHistoryCount: 5,
	}
}

// Normalize fills the documented defaults into unset enum and count
// fields so a partially specified config is always resolvable. Boolean
// and set fields are left alone: an empty enabled-label set or an empty
// filtered-role set is legal configuration, not an omission.
func Normalize(c Config) Config {
	if c.Model == "" {
		c.Model = moderation.ModelObserver
	}
	if c.RoleFilterMode == "" {
		c.RoleFilterMode = RoleFilterExclude
	}
	if c.ContextHistoryCount <= 0 {
		c.ContextHistoryCount = 5
	}
	return c
}

// Validate reports authoring footguns as warnings. None of them make the
// config illegal; the filter implements them literally.
func Validate(c Config) []string {
	var warnings []string
	if !c.ModerateAllRoles && c.RoleFilterMode == RoleFilterInclude && len(c.FilteredRoles) == 0 {
		warnings = append(warnings, "include-mode role filter with an empty role set moderates nobody")
	}
	if !c.ModerateAllChannels && len(c.ModeratedChannels) == 0 {
		warnings = append(warnings, "channel allow-list is empty and all-channels is off: no channel is moderated")
	}
	if len(c.EnabledLabels) == 0 {
		warnings = append(warnings, "no labels enabled: nothing will ever be flagged")
	}
	return warnings
}

// Policy extracts the slice of configuration the decision step consumes.
func (c Config) Policy() moderation.Policy {
	return moderation.Policy{
		EnabledLabels:       c.EnabledLabels,
		Actions:             c.Actions,
		EnableContext:       c.EnableContext,
		ContextHistoryCount: c.ContextHistoryCount,
	}
}

// InScope decides whether a message in channelID by an author holding
// authorRoleIDs is subject to moderation under cfg.
//
// An inactive config short-circuits everything else. The channel gate
// passes when all channels are moderated or the channel is on the
// allow-list. The role gate passes when all roles are moderated,
// otherwise include mode requires at least one filtered role to be held
// and exclude mode requires none to be held; an empty filtered set under
// exclude mode therefore excludes nobody, while under include mode it is
// a literal default-deny.
func InScope(cfg Config, channelID string, authorRoleIDs []string) bool {
	if !cfg.IsActive {
		return false
	}

	channelOK := cfg.ModerateAllChannels || contains(cfg.ModeratedChannels, channelID)
	if !channelOK {
		return false
	}

	if cfg.ModerateAllRoles {
		return true
	}

	holdsFiltered := false
	for _, r := range authorRoleIDs {
		if contains(cfg.FilteredRoles, r) {
			holdsFiltered = true
			break
		}
	}

	switch cfg.RoleFilterMode {
	case RoleFilterInclude:
		return holdsFiltered
	case RoleFilterExclude:
		return !holdsFiltered
	default:
		// Unset mode behaves like the exclude default.
		return !holdsFiltered
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
