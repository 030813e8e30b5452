package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

// OrderEventsPublisher is what the checkout handler depends on.
type OrderEventsPublisher interface {
	PublishOrderPlaced(ctx context.Context, meta PublishMetadata, o *order.Order) error
	Close() error
}

type RabbitPublisher struct {
	ch      *amqp.Channel
	seqRepo SequenceRepository
}

func NewRabbitPublisher(conn *amqp.Connection, seqRepo SequenceRepository) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	return &RabbitPublisher{ch: ch, seqRepo: seqRepo}, nil
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, meta PublishMetadata, o *order.Order) error {
	seq, err := p.seqRepo.NextSequence(ctx, o.OwnerID)
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	env := buildOrderPlacedEvent(o, meta, seq, time.Now().UTC())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced envelope: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		EventsExchange,
		OrderPlacedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.EventID,
			Timestamp:    env.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish OrderPlaced: %w", err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

// NopPublisher is used when the service runs without a broker; checkout still
// works, events are simply not emitted.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, PublishMetadata, *order.Order) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
