// Package rabbitmq publishes integration events to a RabbitMQ topic
// exchange. The event type doubles as the routing key, so consumers bind
// with patterns like "order.*" or "withdrawal.processed".
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"marketplace/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "marketplace.events"

// ErrPublishNotConfirmed is returned when the broker nacks a publish.
var ErrPublishNotConfirmed = errors.New("publish was not confirmed by broker")

// EventPublisher implements ports.EventPublisher on top of an AMQP channel
// with publisher confirms enabled.
type EventPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// NewEventPublisher dials the broker, declares the topic exchange and
// enables publisher confirms.
func NewEventPublisher(url string) (*EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &EventPublisher{conn: conn, ch: ch, acks: acks}, nil
}

// Publish sends one event and waits for the broker's confirm. Calls are
// serialized because confirms arrive on a single channel in publish order.
func (p *EventPublisher) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err = p.ch.PublishWithContext(ctx, exchangeName, event.Type, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		return err
	}

	select {
	case conf := <-p.acks:
		if conf.Ack {
			return nil
		}
		return ErrPublishNotConfirmed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the channel and the connection.
func (p *EventPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
