// Package alerts provides the NATS alert publisher. Flagged decisions
// fan out on per-guild subjects so the bot process serving a guild can
// subscribe narrowly:
//
//	Subject: moderation.alert.<guild_id>
//	Payload: JSON alert document
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/modgate/modgate/ports"
)

// SubjectPrefix is the NATS subject prefix for moderation alerts.
const SubjectPrefix = "moderation.alert."

// Options holds NATS connection settings.
type Options struct {
	URL           string
	Name          string
	ReconnectWait time.Duration
	MaxReconnects int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		URL:           nats.DefaultURL,
		Name:          "modgate",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1, // reconnect forever
	}
}

// Publisher implements ports.AlertPublisher over a NATS connection.
type Publisher struct {
	conn *nats.Conn
	log  zerolog.Logger
}

// alertPayload is the wire form of one alert.
type alertPayload struct {
	GuildID       string    `json:"guild_id"`
	ChannelID     string    `json:"channel_id"`
	AlertsChannel string    `json:"alerts_channel_id"`
	AuthorID      string    `json:"author_id"`
	Model         string    `json:"model"`
	Labels        []string  `json:"labels"`
	Actions       []string  `json:"actions"`
	At            time.Time `json:"at"`
}

// New connects to NATS and returns a ready publisher.
func New(opt Options, log zerolog.Logger) (*Publisher, error) {
	if opt.URL == "" {
		opt.URL = nats.DefaultURL
	}
	if opt.ReconnectWait <= 0 {
		opt.ReconnectWait = 2 * time.Second
	}

	conn, err := nats.Connect(opt.URL,
		nats.Name(opt.Name),
		nats.ReconnectWait(opt.ReconnectWait),
		nats.MaxReconnects(opt.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: conn, log: log}, nil
}

func newAlertPayload(a ports.Alert) alertPayload {
	payload := alertPayload{
		GuildID:       a.GuildID,
		ChannelID:     a.ChannelID,
		AlertsChannel: a.AlertsChannel,
		AuthorID:      a.AuthorID,
		Model:         a.Model.String(),
		At:            a.At,
	}
	for _, label := range a.Labels {
		payload.Labels = append(payload.Labels, label.String())
	}
	for _, action := range a.Actions {
		payload.Actions = append(payload.Actions, action.String())
	}
	return payload
}

// Publish sends one alert on the guild's subject.
func (p *Publisher) Publish(_ context.Context, a ports.Alert) error {
	data, err := json.Marshal(newAlertPayload(a))
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	if err := p.conn.Publish(SubjectPrefix+a.GuildID, data); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn().Err(err).Msg("nats drain")
	}
}

// Ensure interface compliance.
var _ ports.AlertPublisher = (*Publisher)(nil)
