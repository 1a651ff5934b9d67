// Package rabbitmq publishes notifications to a durable RabbitMQ queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the sink uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var _ ports.NotificationSink = (*NotificationSink)(nil)

// NotificationSink publishes each notification as a persistent JSON message
// through the default exchange.
type NotificationSink struct {
	conn  *amqp.Connection
	ch    Channel
	queue string
}

// NewNotificationSink dials the broker and declares the durable queue.
func NewNotificationSink(url, queue string) (*NotificationSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	sink, err := NewNotificationSinkWithChannel(ch, queue)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	sink.conn = conn
	return sink, nil
}

// NewNotificationSinkWithChannel declares queue on an already open channel.
func NewNotificationSinkWithChannel(ch Channel, queue string) (*NotificationSink, error) {
	if queue == "" {
		return nil, errors.New("rabbitmq: no queue configured")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("rabbitmq: declare queue %q: %w", queue, err)
	}
	return &NotificationSink{ch: ch, queue: queue}, nil
}

func (s *NotificationSink) Notify(ctx context.Context, msg notification.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal notification: %w", err)
	}
	err = s.ch.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         msg.Type.String(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: publish notification: %w", err)
	}
	return nil
}

// Close closes the channel and, when the sink dialed it, the connection.
func (s *NotificationSink) Close() error {
	err := s.ch.Close()
	if s.conn != nil {
		err = errors.Join(err, s.conn.Close())
	}
	return err
}
