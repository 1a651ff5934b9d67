// Package logsink writes notifications to the structured log. It is the
// default sink when no broker is configured.
package logsink

import (
	"context"
	"log/slog"

	"arenoexpress/internal/core/domain/model/notification"
	"arenoexpress/internal/core/ports"
)

var _ ports.NotificationSink = (*NotificationSink)(nil)

type NotificationSink struct {
	logger *slog.Logger
}

func NewNotificationSink(logger *slog.Logger) *NotificationSink {
	return &NotificationSink{logger: logger.With("component", "notification_sink")}
}

func (s *NotificationSink) Notify(ctx context.Context, msg notification.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	attrs := []any{
		"user_id", msg.UserID.String(),
		"type", msg.Type.String(),
		"title", msg.Title,
		"message", msg.Body,
	}
	if msg.ShipmentID != nil {
		attrs = append(attrs, "shipment_id", msg.ShipmentID.String())
	}
	s.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}
