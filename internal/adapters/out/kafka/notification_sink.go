// Package kafka publishes notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the sink needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

var _ ports.NotificationSink = (*NotificationSink)(nil)

// NotificationSink writes every notification as one JSON message keyed by
// the recipient, so a user's notifications stay on one partition in order.
type NotificationSink struct {
	writer Writer
}

// NewNotificationSink connects a writer to the given brokers and topic.
// brokers is a comma separated host:port list.
func NewNotificationSink(brokers, topic string) (*NotificationSink, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka: no topic configured")
	}
	w := &skafka.Writer{
		Addr:         skafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireAll,
	}
	return &NotificationSink{writer: w}, nil
}

// NewNotificationSinkWithWriter allows injecting a test writer.
func NewNotificationSinkWithWriter(w Writer) *NotificationSink {
	return &NotificationSink{writer: w}
}

func (s *NotificationSink) Notify(ctx context.Context, msg notification.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("kafka: marshal notification: %w", err)
	}
	err = s.writer.WriteMessages(ctx, skafka.Message{
		Key:   []byte(msg.UserID.String()),
		Value: value,
		Headers: []skafka.Header{
			{Key: "notification_type", Value: []byte(msg.Type.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka: write notification: %w", err)
	}
	return nil
}

func (s *NotificationSink) Close() error {
	return s.writer.Close()
}

func splitBrokers(brokers string) []string {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	return addrs
}
