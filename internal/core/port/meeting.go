package port

import (
	"context"
	"io"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// StatusPatch is the record mutation applied atomically with a status write.
// Nil fields are left untouched.
type StatusPatch struct {
	TempRef       *string
	ClearTempRef  bool
	AudioFilename *string
	AudioURL      *string
	AudioSize     *int64
	Duration      *float64
	Transcript    *string
	Summary       *domain.MeetingSummary
	FailureReason *string
}

// MeetingRepository is an interface to define meeting repository interactions
type MeetingRepository interface {
	Create(ctx context.Context, m domain.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Meeting, error)
	// TransitionStatus performs a conditional single-row update: the status and
	// patch are written only if the row is still in the from status. It reports
	// whether the write won.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.MeetingStatus, patch StatusPatch) (bool, error)
	// MarkFailed flips the meeting to failed unless a terminal status already
	// won. It reports whether this call performed the transition.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// MeetingService drives the meeting lifecycle state machine
type MeetingService interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description string, category domain.MeetingCategory) (*domain.Meeting, error)
	AttachAudio(ctx context.Context, id uuid.UUID, audio io.Reader, filename, contentType string, sizeBytes int64) (*domain.Meeting, error)
	Advance(ctx context.Context, id uuid.UUID, next domain.MeetingStatus, payload *domain.StagePayload) error
	Complete(ctx context.Context, id uuid.UUID, summary domain.MeetingSummary) error
	Fail(ctx context.Context, id uuid.UUID, reason string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Meeting, error)
	OpenAudio(ctx context.Context, id uuid.UUID) (*domain.AudioFile, error)
}
