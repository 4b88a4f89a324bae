package port

import (
	"context"

	"github.com/google/uuid"
)

// AudioArchiver copies a durable audio file into long-term object storage.
// Archival is best effort and never gates a lifecycle transition.
type AudioArchiver interface {
	Archive(ctx context.Context, meetingID uuid.UUID, path string) error
}
