package guild

import (
	"reflect"
	"testing"

	"github.com/modgate/modgate/domain/moderation"
)

// -----------------------------------------------------------------------------
// RoleFilterMode tests
// -----------------------------------------------------------------------------

func TestParseRoleFilterMode(t *testing.T) {
	for _, m := range []RoleFilterMode{RoleFilterInclude, RoleFilterExclude} {
		got, err := ParseRoleFilterMode(m.String())
		if err != nil {
			t.Errorf("ParseRoleFilterMode(%q) returned error: %v", m, err)
		}
		if got != m {
			t.Errorf("ParseRoleFilterMode(%q) = %q, want %q", m, got, m)
		}
	}
	if _, err := ParseRoleFilterMode("Include"); err == nil {
		t.Errorf("expected error for non-lowercase input")
	}
}

// -----------------------------------------------------------------------------
// Defaults tests
// -----------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.IsActive {
		t.Errorf("default config must be active")
	}
	if !cfg.ModerateAllChannels {
		t.Errorf("default config must moderate all channels")
	}
	if !cfg.ModerateAllRoles {
		t.Errorf("default config must moderate all roles")
	}
	if cfg.RoleFilterMode != RoleFilterExclude {
		t.Errorf("default role filter mode = %q, want exclude", cfg.RoleFilterMode)
	}
	if len(cfg.FilteredRoles) != 0 {
		t.Errorf("default filtered roles must be empty")
	}
	if !reflect.DeepEqual(cfg.EnabledLabels, moderation.DefaultLabels()) {
		t.Errorf("default enabled labels = %v, want default label set", cfg.EnabledLabels)
	}
	if !reflect.DeepEqual(cfg.Actions, []moderation.Action{moderation.ActionDelete}) {
		t.Errorf("default actions = %v, want [delete]", cfg.Actions)
	}
	if cfg.Model != moderation.ModelObserver {
		t.Errorf("default model = %q, want observer", cfg.Model)
	}
	if cfg.EnableContext {
		t.Errorf("context must be disabled by default")
	}
	if cfg.ContextHistoryCount != 5 {
		t.Errorf("default context history count = %d, want 5", cfg.ContextHistoryCount)
	}
}

func TestNormalize_FillsDefaults(t *testing.T) {
	var c Config
	n := Normalize(c)

	if n.Model != moderation.ModelObserver {
		t.Errorf("Normalize model = %q, want observer", n.Model)
	}
	if n.RoleFilterMode != RoleFilterExclude {
		t.Errorf("Normalize role filter mode = %q, want exclude", n.RoleFilterMode)
	}
	if n.ContextHistoryCount != 5 {
		t.Errorf("Normalize context history count = %d, want 5", n.ContextHistoryCount)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	c := Config{
		Model:               moderation.ModelArbiter,
		RoleFilterMode:      RoleFilterInclude,
		ContextHistoryCount: 10,
	}
	n := Normalize(c)

	if n.Model != moderation.ModelArbiter || n.RoleFilterMode != RoleFilterInclude || n.ContextHistoryCount != 10 {
		t.Errorf("Normalize overwrote explicit values: %+v", n)
	}
}

func TestValidate_Warnings(t *testing.T) {
	c := Config{
		IsActive:       true,
		RoleFilterMode: RoleFilterInclude,
	}
	warnings := Validate(c)
	if len(warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}

	if w := Validate(DefaultConfig()); len(w) != 0 {
		t.Errorf("default config must validate clean, got %v", w)
	}
}

// -----------------------------------------------------------------------------
// InScope tests
// -----------------------------------------------------------------------------

func TestInScope_InactiveShortCircuits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IsActive = false

	if InScope(cfg, "chan-1", []string{"role-1"}) {
		t.Errorf("inactive config must never be in scope")
	}
}

func TestInScope_ChannelGate(t *testing.T) {
	tests := []struct {
		name        string
		allChannels bool
		moderated   []string
		channelID   string
		want        bool
	}{
		{"all channels", true, nil, "chan-1", true},
		{"listed channel", false, []string{"chan-1", "chan-2"}, "chan-2", true},
		{"unlisted channel", false, []string{"chan-1"}, "chan-3", false},
		{"empty allow-list", false, nil, "chan-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ModerateAllChannels = tt.allChannels
			cfg.ModeratedChannels = tt.moderated

			if got := InScope(cfg, tt.channelID, nil); got != tt.want {
				t.Errorf("InScope = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInScope_RoleGate(t *testing.T) {
	tests := []struct {
		name     string
		mode     RoleFilterMode
		filtered []string
		roles    []string
		want     bool
	}{
		{"include with held role", RoleFilterInclude, []string{"mod", "vip"}, []string{"vip"}, true},
		{"include without held role", RoleFilterInclude, []string{"mod"}, []string{"member"}, false},
		{"include empty set denies everyone", RoleFilterInclude, nil, []string{"member"}, false},
		{"include empty set denies roleless author", RoleFilterInclude, nil, nil, false},
		{"exclude with held role", RoleFilterExclude, []string{"admin"}, []string{"admin"}, false},
		{"exclude without held role", RoleFilterExclude, []string{"admin"}, []string{"member"}, true},
		{"exclude empty set passes everyone", RoleFilterExclude, nil, []string{"member"}, true},
		{"exclude empty set passes roleless author", RoleFilterExclude, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ModerateAllRoles = false
			cfg.RoleFilterMode = tt.mode
			cfg.FilteredRoles = tt.filtered

			if got := InScope(cfg, "chan-1", tt.roles); got != tt.want {
				t.Errorf("InScope = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInScope_AllRolesPassesUnconditionally(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModerateAllRoles = true
	// Filter fields must be ignored when all roles are moderated.
	cfg.RoleFilterMode = RoleFilterInclude
	cfg.FilteredRoles = nil

	if !InScope(cfg, "chan-1", []string{"anything"}) {
		t.Errorf("all-roles config must pass the role gate")
	}
}

func TestInScope_RoleGateOnlyAfterChannelGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModerateAllChannels = false
	cfg.ModeratedChannels = []string{"chan-1"}
	cfg.ModerateAllRoles = false
	cfg.RoleFilterMode = RoleFilterExclude

	// Channel gate fails, so the (passing) role gate cannot rescue it.
	if InScope(cfg, "chan-2", nil) {
		t.Errorf("failed channel gate must make the message out of scope")
	}
}
