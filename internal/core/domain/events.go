package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingUploaded is published once an audio blob lands in the temp area,
// and consumed by the processing worker.
type MeetingUploaded struct {
	MeetingID uuid.UUID `json:"meeting_id"`
	TempRef   string    `json:"temp_ref"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
}

// NotificationEvent identifies the kind of user-facing notification
type NotificationEvent string

const (
	NotificationMeetingCompleted NotificationEvent = "meeting.completed"
	NotificationMeetingFailed    NotificationEvent = "meeting.failed"
)

// MeetingNotification is the payload handed to the external notification
// dispatcher (template rendering and email delivery happen downstream).
type MeetingNotification struct {
	Event     NotificationEvent `json:"event"`
	MeetingID uuid.UUID         `json:"meeting_id"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	Title     string            `json:"title"`
	Reason    string            `json:"reason,omitempty"`
	SentAt    time.Time         `json:"sent_at"`
}
