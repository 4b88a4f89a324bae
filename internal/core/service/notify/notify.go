package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
)

type notifyService struct {
	publisher port.EventPublisher
	subject   string
	logger    *slog.Logger
}

// NewNotifyService creates a notifier that publishes lifecycle notifications
// for the external email dispatcher to render and deliver.
func NewNotifyService(publisher port.EventPublisher, subject string, logger *slog.Logger) port.Notifier {
	return &notifyService{
		publisher: publisher,
		subject:   subject,
		logger:    logger,
	}
}

func (n *notifyService) MeetingCompleted(ctx context.Context, m domain.Meeting) error {
	return n.publish(ctx, domain.MeetingNotification{
		Event:     domain.NotificationMeetingCompleted,
		MeetingID: m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		SentAt:    time.Now().UTC(),
	})
}

func (n *notifyService) MeetingFailed(ctx context.Context, m domain.Meeting, reason string) error {
	return n.publish(ctx, domain.MeetingNotification{
		Event:     domain.NotificationMeetingFailed,
		MeetingID: m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		Reason:    reason,
		SentAt:    time.Now().UTC(),
	})
}

func (n *notifyService) publish(ctx context.Context, notification domain.MeetingNotification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("could not marshal notification: %w", err)
	}

	if err := n.publisher.Publish(ctx, n.subject, data); err != nil {
		return fmt.Errorf("could not publish notification: %w", err)
	}

	n.logger.Info("notification dispatched",
		"event", notification.Event,
		"meeting_id", notification.MeetingID,
	)
	return nil
}
