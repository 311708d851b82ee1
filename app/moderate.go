// Package app provides application services that orchestrate the
// moderation decision flow over the ports. Domain logic stays in
// domain/; this layer sequences it and talks to the stores.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/modgate/modgate/domain/credit"
	"github.com/modgate/modgate/domain/guild"
	"github.com/modgate/modgate/domain/moderation"
	"github.com/modgate/modgate/domain/tier"
	"github.com/modgate/modgate/ports"
)

// Status classifies the outcome of one moderation event.
type Status string

const (
	// StatusOutOfScope means the applicability filter excluded the
	// message; nothing was charged.
	StatusOutOfScope Status = "out_of_scope"
	// StatusRefused means the account could not afford the call; nothing
	// was charged and no classification ran.
	StatusRefused Status = "insufficient_credits"
	// StatusModerated means classification ran and a decision was made.
	StatusModerated Status = "moderated"
)

// Message is one incoming guild message considered for moderation.
type Message struct {
	GuildID       string
	ChannelID     string
	AuthorID      string
	AuthorRoleIDs []string

	// AccountID is the billing account charged for this guild.
	AccountID string
	// Tier bounds the allowed models and the monthly credit cap.
	Tier tier.Tier

	Text string

	// ContextHistory carries prior messages for the context-aware second
	// pass. The first pass leaves it empty; the caller re-invokes with
	// history when the first decision reports NeedsContext.
	ContextHistory []string
}

// Outcome is the result of one moderation event.
type Outcome struct {
	ID               string
	Status           Status
	Model            moderation.Model
	Cost             int64
	RemainingCredits int64
	Decision         moderation.Decision
}

// ModerationDeps contains dependencies for ModerationService. Alerts and
// Metrics are optional; Plans defaults to the static tier catalog.
type ModerationDeps struct {
	Configs    ports.GuildConfigStore
	Credits    ports.CreditStore
	Classifier ports.Classifier
	Alerts     ports.AlertPublisher
	Metrics    ports.MetricsSink
	Clock      ports.Clock
	IDGen      ports.IDGenerator

	// Plans overrides the tier catalog (deployment-specific grants).
	Plans []tier.Plan
}

// ModerationService runs the decision flow for incoming messages. It
// holds no mutable state besides its injected ports and is safe for
// concurrent use across guilds and accounts.
type ModerationService struct {
	configs    ports.GuildConfigStore
	credits    ports.CreditStore
	classifier ports.Classifier
	alerts     ports.AlertPublisher
	metrics    ports.MetricsSink
	clock      ports.Clock
	idGen      ports.IDGenerator
	plans      map[tier.Tier]tier.Plan
	logger     zerolog.Logger
}

// NewModerationService creates a new moderation service.
func NewModerationService(deps ModerationDeps, logger zerolog.Logger) *ModerationService {
	catalog := deps.Plans
	if len(catalog) == 0 {
		catalog = tier.Catalog()
	}
	plans := make(map[tier.Tier]tier.Plan, len(catalog))
	for _, p := range catalog {
		plans[p.Tier] = p
	}

	return &ModerationService{
		configs:    deps.Configs,
		credits:    deps.Credits,
		classifier: deps.Classifier,
		alerts:     deps.Alerts,
		metrics:    deps.Metrics,
		clock:      deps.Clock,
		idGen:      deps.IDGen,
		plans:      plans,
		logger:     logger,
	}
}

// Moderate runs one moderation event end to end: applicability filter,
// model resolution, credit charge, classification, decision, alert
// fan-out. Configs and balances are read fresh per call and never cached.
//
// Model resolution and the affordability check both use the single
// balance snapshot read here; the commit is the store's atomic
// conditional decrement, so a concurrent spend on the same account
// surfaces as a refusal rather than an over-spend.
func (s *ModerationService) Moderate(ctx context.Context, msg Message) (Outcome, error) {
	out := Outcome{ID: s.idGen.New()}
	log := s.logger.With().
		Str("decision_id", out.ID).
		Str("guild_id", msg.GuildID).
		Str("channel_id", msg.ChannelID).
		Logger()

	cfg, err := s.configs.Get(ctx, msg.GuildID)
	if err != nil {
		return out, fmt.Errorf("load guild config: %w", err)
	}
	cfg = guild.Normalize(cfg)

	if !guild.InScope(cfg, msg.ChannelID, msg.AuthorRoleIDs) {
		out.Status = StatusOutOfScope
		s.countDecision(out.Status)
		log.Debug().Msg("message out of moderation scope")
		return out, nil
	}

	plan, ok := s.plans[msg.Tier]
	if !ok {
		return out, fmt.Errorf("%w: tier %q", moderation.ErrUnknownVariant, string(msg.Tier))
	}

	snapshot, err := s.credits.Get(ctx, msg.AccountID)
	if err != nil {
		return out, fmt.Errorf("load credit state: %w", err)
	}
	// The tier cap is authoritative over whatever the store was
	// provisioned with.
	maxCredits := plan.MonthlyCredits

	out.Model = s.resolveModel(cfg.Model, plan, snapshot.Remaining, maxCredits)

	text := msg.Text
	if len(msg.ContextHistory) > 0 {
		text = strings.Join(msg.ContextHistory, "\n") + "\n" + msg.Text
	}

	newBalance, err := credit.Charge(credit.State{Remaining: snapshot.Remaining, MaxMonthly: maxCredits}, out.Model, len(text))
	if err != nil {
		if errors.Is(err, credit.ErrInsufficientCredits) {
			out.Status = StatusRefused
			out.RemainingCredits = snapshot.Remaining
			s.countDecision(out.Status)
			log.Warn().
				Str("model", out.Model.String()).
				Int64("remaining", snapshot.Remaining).
				Msg("moderation refused: insufficient credits")
			return out, nil
		}
		return out, err
	}
	out.Cost = snapshot.Remaining - newBalance

	committed, err := s.credits.Debit(ctx, msg.AccountID, out.Cost)
	if err != nil {
		if errors.Is(err, credit.ErrInsufficientCredits) {
			// Lost a race with a concurrent spend on the same account.
			out.Status = StatusRefused
			s.countDecision(out.Status)
			log.Warn().Str("model", out.Model.String()).Msg("moderation refused: balance changed under us")
			return out, nil
		}
		return out, fmt.Errorf("debit credits: %w", err)
	}
	out.RemainingCredits = committed
	if s.metrics != nil {
		s.metrics.CreditsSpent(out.Model.String(), out.Cost)
	}

	result, err := s.classify(ctx, moderation.Request{
		Text:           text,
		Model:          out.Model,
		EnabledLabels:  cfg.EnabledLabels,
		IncludeContext: len(msg.ContextHistory) > 0,
	})
	if err != nil {
		// Charged but unclassified; a refund is the caller's call.
		return out, fmt.Errorf("classify: %w", err)
	}

	out.Decision = moderation.Decide(result, cfg.Policy())
	out.Status = StatusModerated
	s.countDecision(out.Status)

	if out.Decision.Flagged {
		if s.metrics != nil {
			for _, l := range out.Decision.Labels {
				s.metrics.Flagged(l.String())
			}
		}
		s.publishAlert(ctx, log, msg, cfg, out)
	}

	log.Info().
		Str("model", out.Model.String()).
		Int64("cost", out.Cost).
		Int64("remaining", out.RemainingCredits).
		Bool("flagged", out.Decision.Flagged).
		Bool("needs_context", out.Decision.NeedsContext).
		Msg("moderation decision")

	return out, nil
}

// resolveModel turns the configured model into the concrete model to
// run, with the tier as the authoritative upper bound: Auto resolves
// over the tier's allowed set against the balance snapshot, and a
// configured concrete model outside the tier is clamped down.
func (s *ModerationService) resolveModel(configured moderation.Model, plan tier.Plan, remaining, maxCredits int64) moderation.Model {
	if configured == "" {
		configured = moderation.ModelObserver
	}
	if configured.IsAuto() {
		return moderation.ResolveAuto(remaining, maxCredits, plan.AllowedModels)
	}
	return plan.ClampModel(configured)
}

func (s *ModerationService) classify(ctx context.Context, req moderation.Request) (moderation.Result, error) {
	start := s.clock.Now()
	result, err := s.classifier.Classify(ctx, req)
	if s.metrics != nil {
		s.metrics.ClassifierDuration(s.clock.Now().Sub(start).Seconds())
	}
	return result, err
}

func (s *ModerationService) publishAlert(ctx context.Context, log zerolog.Logger, msg Message, cfg guild.Config, out Outcome) {
	if s.alerts == nil || cfg.AlertsChannel == "" {
		return
	}
	alert := ports.Alert{
		GuildID:       msg.GuildID,
		ChannelID:     msg.ChannelID,
		AlertsChannel: cfg.AlertsChannel,
		AuthorID:      msg.AuthorID,
		Model:         out.Model,
		Labels:        out.Decision.Labels,
		Actions:       out.Decision.Actions,
		At:            s.clock.Now(),
	}
	if err := s.alerts.Publish(ctx, alert); err != nil {
		log.Warn().Err(err).Msg("alert publish failed")
	}
}

func (s *ModerationService) countDecision(status Status) {
	if s.metrics != nil {
		s.metrics.Decision(string(status))
	}
}
