// Package tier provides subscription tiers, billing cycles, and the
// static catalog mapping each tier to its allowed moderation models and
// monthly credit cap. Everything here is a pure lookup table.
package tier

import (
	"fmt"
	"strings"

	"github.com/modgate/modgate/domain/moderation"
)

// Tier is a subscription level.
type Tier string

const (
	Free       Tier = "free"
	Starter    Tier = "starter"
	Pro        Tier = "pro"
	Enterprise Tier = "enterprise"
)

// AllTiers returns every tier, cheapest first.
func AllTiers() []Tier {
	return []Tier{Free, Starter, Pro, Enterprise}
}

// ParseTier parses a tier name. Matching is case-insensitive.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(s)) {
	case Free, Starter, Pro, Enterprise:
		return Tier(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("%w: tier %q", moderation.ErrUnknownVariant, s)
}

// String returns the lowercase wire form.
func (t Tier) String() string {
	return string(t)
}

// DisplayName returns the human-readable name.
func (t Tier) DisplayName() string {
	switch t {
	case Free:
		return "Free"
	case Starter:
		return "Starter"
	case Pro:
		return "Pro"
	case Enterprise:
		return "Enterprise"
	default:
		return "Unknown"
	}
}

// Description returns the marketing description for the tier.
func (t Tier) Description() string {
	switch t {
	case Free:
		return "Observer-only moderation for small communities."
	case Starter:
		return "Observer and Sentinel models with a larger monthly budget."
	case Pro:
		return "Every model including Arbiter, with automatic model tiering."
	case Enterprise:
		return "Every model, the highest credit cap, and priority support."
	default:
		return ""
	}
}

// Features returns the feature bullet list for the tier.
func (t Tier) Features() []string {
	switch t {
	case Free:
		return []string{
			"Observer model",
			"50,000 credits per month",
			"Channel and role filters",
		}
	case Starter:
		return []string{
			"Observer and Sentinel models",
			"500,000 credits per month",
			"Channel and role filters",
			"Alert channel",
		}
	case Pro:
		return []string{
			"Observer, Sentinel and Arbiter models",
			"Automatic model selection",
			"2,000,000 credits per month",
			"Context-aware second pass",
			"Alert channel",
		}
	case Enterprise:
		return []string{
			"Observer, Sentinel and Arbiter models",
			"Automatic model selection",
			"10,000,000 credits per month",
			"Context-aware second pass",
			"Alert channel",
			"Priority support",
		}
	default:
		return nil
	}
}

// BillingCycle is a subscription billing cadence.
type BillingCycle string

const (
	Monthly BillingCycle = "monthly"
	Yearly  BillingCycle = "yearly"
)

// ParseBillingCycle parses a billing cycle. Matching is case-insensitive.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(strings.ToLower(s)) {
	case Monthly, Yearly:
		return BillingCycle(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("%w: billing cycle %q", moderation.ErrUnknownVariant, s)
}

// String returns the lowercase wire form.
func (c BillingCycle) String() string {
	return string(c)
}

// Plan describes what a tier grants (immutable value type).
type Plan struct {
	Tier           Tier
	MonthlyCredits int64
	AllowedModels  []moderation.Model
	Description    string
	Features       []string
}

// Catalog returns the static tier catalog, cheapest tier first. It is
// not persisted; it populates the allowed-models and credit-cap inputs
// to model resolution.
func Catalog() []Plan {
	plans := make([]Plan, 0, len(AllTiers()))
	for _, t := range AllTiers() {
		p, _ := Lookup(t)
		plans = append(plans, p)
	}
	return plans
}

// Lookup returns the plan for a tier.
func Lookup(t Tier) (Plan, bool) {
	var p Plan
	switch t {
	case Free:
		p = Plan{
			Tier:           Free,
			MonthlyCredits: 50_000,
			AllowedModels:  []moderation.Model{moderation.ModelObserver},
		}
	case Starter:
		p = Plan{
			Tier:           Starter,
			MonthlyCredits: 500_000,
			AllowedModels:  []moderation.Model{moderation.ModelObserver, moderation.ModelSentinel},
		}
	case Pro:
		p = Plan{
			Tier:           Pro,
			MonthlyCredits: 2_000_000,
			AllowedModels: []moderation.Model{
				moderation.ModelAuto, moderation.ModelObserver,
				moderation.ModelSentinel, moderation.ModelArbiter,
			},
		}
	case Enterprise:
		p = Plan{
			Tier:           Enterprise,
			MonthlyCredits: 10_000_000,
			AllowedModels: []moderation.Model{
				moderation.ModelAuto, moderation.ModelObserver,
				moderation.ModelSentinel, moderation.ModelArbiter,
			},
		}
	default:
		return Plan{}, false
	}
	p.Description = t.Description()
	p.Features = t.Features()
	return p, true
}

// Allows reports whether the plan permits the given model.
func (p Plan) Allows(m moderation.Model) bool {
	for _, a := range p.AllowedModels {
		if a == m {
			return true
		}
	}
	return false
}

// ClampModel bounds a configured model to what the plan allows. An
// allowed model is echoed unchanged; a disallowed one is lowered to the
// strongest allowed concrete model that does not cost more, falling back
// to the cheapest allowed model, then to Observer for an empty plan.
func (p Plan) ClampModel(m moderation.Model) moderation.Model {
	if p.Allows(m) {
		return m
	}

	var best moderation.Model
	var cheapest moderation.Model
	for _, a := range p.AllowedModels {
		if a.IsAuto() {
			continue
		}
		if cheapest == "" || a.CreditsPerByte() < cheapest.CreditsPerByte() {
			cheapest = a
		}
		if m.IsAuto() || a.CreditsPerByte() <= m.CreditsPerByte() {
			if best == "" || a.CreditsPerByte() > best.CreditsPerByte() {
				best = a
			}
		}
	}
	if best != "" {
		return best
	}
	if cheapest != "" {
		return cheapest
	}
	return moderation.ModelObserver
}
