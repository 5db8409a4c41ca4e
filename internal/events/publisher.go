// Package events fans record changes out to subscribers so dashboards can
// refetch after a write.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Actions carried by RecordChange.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionBulkUpdated = "bulk_updated"
	ActionSeeded      = "seeded"
)

// RecordChange describes one successful write.
type RecordChange struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         uint      `json:"id,omitempty"`
	Affected   int64     `json:"affected,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends record changes over a redis channel and a nats subject. Either
// transport may be absent.
type Publisher struct {
	redis   *redis.Client
	channel string
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewPublisher constructs a publisher. The nats subject is derived from the
// channel name with ':' replaced by '.'.
func NewPublisher(redisClient *redis.Client, channel string, natsConn *nats.Conn, logger zerolog.Logger) *Publisher {
	return &Publisher{
		redis:   redisClient,
		channel: channel,
		nats:    natsConn,
		subject: strings.ReplaceAll(channel, ":", "."),
		logger:  logger.With().Str("component", "record_events").Logger(),
		now:     time.Now,
	}
}

// Channel returns the redis channel changes are published on.
func (p *Publisher) Channel() string { return p.channel }

// RecordChanged publishes the change. Transport failures are logged and
// swallowed; the write that triggered the event has already succeeded.
func (p *Publisher) RecordChanged(ctx context.Context, change RecordChange) {
	if p == nil || p.channel == "" {
		return
	}
	if change.OccurredAt.IsZero() {
		change.OccurredAt = p.now().UTC()
	}

	payload, err := json.Marshal(change)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to encode record change")
		return
	}

	if p.redis != nil {
		if err := p.redis.Publish(ctx, p.channel, payload).Err(); err != nil {
			p.logger.Warn().Err(err).Str("entity", change.Entity).Msg("failed to publish record change to redis")
		}
	}

	if p.nats != nil {
		if err := p.nats.Publish(p.subject, payload); err != nil {
			p.logger.Warn().Err(err).Str("entity", change.Entity).Msg("failed to publish record change to nats")
		}
	}
}
