package schema

import (
	"github.com/modgate/modgate/domain/guild"
	"github.com/modgate/modgate/domain/moderation"
)

// GuildsInfoRequest asks for the guilds a Discord user administers.
type GuildsInfoRequest struct {
	DiscordID     string              `json:"discord_id"`
	AdminGuildIDs []string            `json:"admin_guild_ids"`
	GuildAdminIDs map[string][]string `json:"guild_admin_ids"`
}

// GuildsInfoResponse carries the resolved guild summaries.
type GuildsInfoResponse struct {
	Guilds []GuildInfo `json:"guilds"`
}

// GuildInfoRequest asks for a single guild's summary.
type GuildInfoRequest struct {
	DiscordID     string   `json:"discord_id"`
	GuildAdminIDs []string `json:"guild_admin_ids"`
}

// GuildInfo is a Discord guild as the dashboard sees it.
type GuildInfo struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	OwnerID  string                 `json:"owner_id"`
	Icon     string                 `json:"icon,omitempty"`
	Channels map[string]ChannelInfo `json:"channels"`
	Roles    map[string]RoleInfo    `json:"roles"`
	Admins   map[string]UserInfo    `json:"admins"`
}

// ChannelInfo is a Discord channel summary.
type ChannelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ChannelType string `json:"channel_type"`
}

// RoleInfo is a Discord role summary.
type RoleInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    uint32 `json:"color"`
	Position uint16 `json:"position"`
}

// UserInfo is a Discord user summary.
type UserInfo struct {
	DiscordID string `json:"discord_id"`
	Username  string `json:"username"`
	IsOwner   bool   `json:"is_owner"`
	Avatar    string `json:"avatar,omitempty"`
}

// AdminInfo is a guild administrator with their account standing.
type AdminInfo struct {
	UserInfo         UserInfo `json:"user_info"`
	SubscriptionTier string   `json:"subscription_tier"`
	HasAccount       bool     `json:"has_account"`
}

// AdminConfig is a guild administrator's own settings.
type AdminConfig struct {
	IsOptedIn bool `json:"is_opted_in"`
}

// AdminData pairs an administrator with their settings.
type AdminData struct {
	AdminInfo   AdminInfo   `json:"admin_info"`
	AdminConfig AdminConfig `json:"admin_config"`
}

// CheckAccountRequest asks whether a guild owner has a billing account.
type CheckAccountRequest struct {
	GuildID        string `json:"guild_id"`
	OwnerDiscordID string `json:"owner_discord_id"`
}

// CheckAccountResponse reports a guild owner's account standing.
type CheckAccountResponse struct {
	HasAccount      bool   `json:"has_account"`
	HasSubscription bool   `json:"has_subscription"`
	AccountTier     string `json:"account_tier,omitempty"`
}

// DiscordStatusResponse reports whether a Discord identity is linked.
type DiscordStatusResponse struct {
	DiscordID string `json:"discord_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
}

// DiscordModerateRequest is the bot's moderation call for one message.
type DiscordModerateRequest struct {
	GuildInfo GuildInfo `json:"guild_info"`
	Text      string    `json:"text"`
}

// DiscordDataResponse carries the full dashboard state per guild.
type DiscordDataResponse struct {
	DiscordData map[string]DiscordData `json:"discord_data"`
}

// DiscordData bundles a guild's summary, config and admin roster.
type DiscordData struct {
	GuildInfo   GuildInfo            `json:"guild_info"`
	GuildConfig GuildConfig          `json:"guild_config"`
	AdminData   map[string]AdminData `json:"admin_data"`
}

// GuildConfig is the guild moderation configuration on the wire.
// Optional fields are pointers so that a partially specified document
// can be resolved against the documented defaults, the same way the
// persistence layer treats absent keys.
type GuildConfig struct {
	IsActive            *bool                  `json:"is_active,omitempty"`
	ModerateAllChannels *bool                  `json:"moderate_all_channels,omitempty"`
	ModeratedChannels   map[string]ChannelInfo `json:"moderated_channels"`
	ModerateAllRoles    *bool                  `json:"moderate_all_roles,omitempty"`
	RoleFilterMode      string                 `json:"role_filter_mode,omitempty"`
	FilteredRoles       map[string]RoleInfo    `json:"filtered_roles"`
	EnabledLabels       []string               `json:"enabled_labels"`
	Actions             []string               `json:"actions"`
	Model               string                 `json:"model,omitempty"`
	AlertsChannel       string                 `json:"alerts_channel_id,omitempty"`
	EnableContext       *bool                  `json:"enable_context,omitempty"`
	ContextHistoryCount *int                   `json:"context_history_count,omitempty"`
}

// Resolve converts the wire config to the domain form, filling absent
// fields with the documented defaults and validating enum names.
func (c GuildConfig) Resolve() (guild.Config, error) {
	cfg := guild.DefaultConfig()

	if c.IsActive != nil {
		cfg.IsActive = *c.IsActive
	}
	if c.ModerateAllChannels != nil {
		cfg.ModerateAllChannels = *c.ModerateAllChannels
	}
	if len(c.ModeratedChannels) > 0 {
		cfg.ModeratedChannels = make([]string, 0, len(c.ModeratedChannels))
		for id := range c.ModeratedChannels {
			cfg.ModeratedChannels = append(cfg.ModeratedChannels, id)
		}
	}
	if c.ModerateAllRoles != nil {
		cfg.ModerateAllRoles = *c.ModerateAllRoles
	}
	if c.RoleFilterMode != "" {
		mode, err := guild.ParseRoleFilterMode(c.RoleFilterMode)
		if err != nil {
			return guild.Config{}, err
		}
		cfg.RoleFilterMode = mode
	}
	if len(c.FilteredRoles) > 0 {
		cfg.FilteredRoles = make([]string, 0, len(c.FilteredRoles))
		for id := range c.FilteredRoles {
			cfg.FilteredRoles = append(cfg.FilteredRoles, id)
		}
	}
	if c.EnabledLabels != nil {
		labels, err := ParseLabels(c.EnabledLabels)
		if err != nil {
			return guild.Config{}, err
		}
		cfg.EnabledLabels = labels
	}
	if c.Actions != nil {
		actions := make([]moderation.Action, 0, len(c.Actions))
		for _, name := range c.Actions {
			action, err := moderation.ParseAction(name)
			if err != nil {
				return guild.Config{}, err
			}
			actions = append(actions, action)
		}
		cfg.Actions = actions
	}
	if c.Model != "" {
		model, err := moderation.ParseModel(c.Model)
		if err != nil {
			return guild.Config{}, err
		}
		cfg.Model = model
	}
	cfg.AlertsChannel = c.AlertsChannel
	if c.EnableContext != nil {
		cfg.EnableContext = *c.EnableContext
	}
	if c.ContextHistoryCount != nil {
		cfg.ContextHistoryCount = *c.ContextHistoryCount
	}

	return guild.Normalize(cfg), nil
}

// FromConfig converts a domain config to the wire form. Channel and
// role entries carry IDs only; the dashboard joins in names from the
// guild summary.
func FromConfig(cfg guild.Config) GuildConfig {
	out := GuildConfig{
		IsActive:            &cfg.IsActive,
		ModerateAllChannels: &cfg.ModerateAllChannels,
		ModeratedChannels:   map[string]ChannelInfo{},
		ModerateAllRoles:    &cfg.ModerateAllRoles,
		RoleFilterMode:      cfg.RoleFilterMode.String(),
		FilteredRoles:       map[string]RoleInfo{},
		EnabledLabels:       LabelNames(cfg.EnabledLabels),
		Model:               cfg.Model.String(),
		AlertsChannel:       cfg.AlertsChannel,
		EnableContext:       &cfg.EnableContext,
		ContextHistoryCount: &cfg.ContextHistoryCount,
	}
	for _, id := range cfg.ModeratedChannels {
		out.ModeratedChannels[id] = ChannelInfo{ID: id}
	}
	for _, id := range cfg.FilteredRoles {
		out.FilteredRoles[id] = RoleInfo{ID: id}
	}
	out.Actions = make([]string, len(cfg.Actions))
	for i, action := range cfg.Actions {
		out.Actions[i] = action.String()
	}
	return out
}
