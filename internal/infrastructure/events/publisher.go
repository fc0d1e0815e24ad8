package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const RoutingKeyViewsInvalidated = "views.invalidated"

// ViewChange tells other sessions of an owner which cached views are stale.
type ViewChange struct {
	OwnerID string    `json:"ownerId"`
	Views   []string  `json:"views"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, change ViewChange) error
	Close() error
}

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening amqp channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func newPublisherWithChannel(ch channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange}
}

func (p *AMQPPublisher) Publish(ctx context.Context, change ViewChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encoding view change: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.Publish(p.exchange, RoutingKeyViewsInvalidated, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    change.At,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing view change: %w", err)
	}

	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ViewChange) error { return nil }
func (NopPublisher) Close() error                              { return nil }
