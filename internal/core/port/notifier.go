package port

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// Notifier fires user-facing notifications keyed off lifecycle transitions.
// Template rendering and delivery happen in an external collaborator.
type Notifier interface {
	MeetingCompleted(ctx context.Context, m domain.Meeting) error
	MeetingFailed(ctx context.Context, m domain.Meeting, reason string) error
}
