package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"relocation_quest/internal/domain"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// RabbitMQ announces articles written by a migration run so downstream
// consumers (search index, cache warmers) can pick them up. It only owns
// the exchange; consumers declare and bind their own queues.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	r := &RabbitMQ{
		conn:       conn,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "publisher", "exchange", cfg.Exchange),
	}

	if r.channel, err = conn.Channel(); err != nil {
		r.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := r.channel.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		r.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", cfg.Exchange, err)
	}
	// Confirms let Publish report a broker-side failure per article.
	if err := r.channel.Confirm(false); err != nil {
		r.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	r.logger.Info("publishing migrated articles", "routing_key", cfg.RoutingKey)
	return r, nil
}

type ArticleMessage struct {
	Action    string         `json:"action"`
	Article   domain.Article `json:"article"`
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewArticleMessage describes a write. Only inserts and updates are
// announced; an unchanged row has nothing to publish.
func NewArticleMessage(runID string, article *domain.Article, result domain.UpsertResult, now time.Time) (ArticleMessage, error) {
	var action string
	switch result {
	case domain.UpsertInserted:
		action = ActionCreate
	case domain.UpsertUpdated:
		action = ActionUpdate
	default:
		return ArticleMessage{}, fmt.Errorf("publish %s article %q: %w", result, article.Slug, domain.ErrInvalidArgument)
	}

	return ArticleMessage{
		Action:    action,
		Article:   *article,
		RunID:     runID,
		Timestamp: now.UTC(),
	}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, runID string, article *domain.Article, result domain.UpsertResult) error {
	now := time.Now()
	msg, err := NewArticleMessage(runID, article, result, now)
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	confirm, err := r.channel.PublishWithDeferredConfirmWithContext(ctx, r.exchange, r.routingKey, false, false,
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/json",
			CorrelationId: runID,
			Body:          body,
			Timestamp:     now,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", article.Slug, err)
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", article.Slug, err)
	}
	if !acked {
		return fmt.Errorf("broker rejected %s", article.Slug)
	}

	r.logger.Debug("published article",
		"slug", article.Slug,
		"action", msg.Action,
		"run_id", runID,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
