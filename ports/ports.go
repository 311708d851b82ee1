// Package ports defines interfaces (contracts) between the decision core
// and its collaborators. Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/modgate/modgate/domain/credit"
	"github.com/modgate/modgate/domain/guild"
	"github.com/modgate/modgate/domain/moderation"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// GuildConfigStore persists guild moderation configuration.
type GuildConfigStore interface {
	// Get retrieves a guild's configuration. A guild that was never
	// configured gets the documented defaults, not an error.
	Get(ctx context.Context, guildID string) (guild.Config, error)

	// Put stores a guild's configuration.
	Put(ctx context.Context, guildID string, cfg guild.Config) error
}

// CreditStore persists account credit balances.
//
// Debit is the commit half of the ledger's check-then-charge: it must be
// a single atomic conditional decrement ("subtract amount iff the result
// stays non-negative") so that concurrent decisions for one account can
// never drive the balance negative. A shortfall surfaces as
// credit.ErrInsufficientCredits with the balance untouched.
type CreditStore interface {
	// Get retrieves the current balance snapshot for an account.
	Get(ctx context.Context, accountID string) (credit.State, error)

	// Debit atomically subtracts amount and returns the new balance.
	Debit(ctx context.Context, accountID string, amount int64) (int64, error)

	// Put stores a balance snapshot (provisioning, monthly reset, top-up).
	Put(ctx context.Context, accountID string, s credit.State) error
}

// -----------------------------------------------------------------------------
// External Service Ports
// -----------------------------------------------------------------------------

// Classifier is the external text-classification service. The core owns
// no retry or timeout policy for it; network discipline belongs to the
// adapter and its caller.
type Classifier interface {
	// Classify scores a text with a concrete model.
	Classify(ctx context.Context, req moderation.Request) (moderation.Result, error)
}

// Alert describes a flagged message fanned out to a guild's alerts channel.
type Alert struct {
	GuildID       string
	ChannelID     string
	AlertsChannel string
	AuthorID      string
	Model         moderation.Model
	Labels        []moderation.Label
	Actions       []moderation.Action
	At            time.Time
}

// AlertPublisher fans out moderation alerts. Delivery is best effort;
// a failed publish never fails the decision.
type AlertPublisher interface {
	Publish(ctx context.Context, a Alert) error
}

// -----------------------------------------------------------------------------
// Observability Ports
// -----------------------------------------------------------------------------

// MetricsSink records decision metrics. Implementations must be safe for
// concurrent use.
type MetricsSink interface {
	// Decision counts one moderation event by outcome.
	Decision(outcome string)

	// Flagged counts one active label on a flagged decision.
	Flagged(label string)

	// CreditsSpent counts credits charged, by model.
	CreditsSpent(model string, amount int64)

	// ClassifierDuration observes one classifier round-trip in seconds.
	ClassifierDuration(seconds float64)
}
