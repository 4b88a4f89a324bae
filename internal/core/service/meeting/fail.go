package meeting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Fail flips a meeting to failed from any non-terminal state, discards the
// associated temp file and dispatches the failed notification. Idempotent:
// a second call, or a call racing a Complete that already won, is a no-op.
func (s *meetingService) Fail(ctx context.Context, id uuid.UUID, reason string) error {

	won, err := s.repo.MarkFailed(ctx, id, reason)
	if err != nil {
		return fmt.Errorf("could not fail meeting: %w", err)
	}
	if !won {
		return nil
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not reload failed meeting: %w", err)
	}

	if m.TempRef != "" {
		s.discardTemp(m.TempRef)
	}

	if err := s.notifier.MeetingFailed(ctx, *m, reason); err != nil {
		s.logger.Error("failed to dispatch failed notification", "meeting_id", id, "error", err)
	}

	return nil
}
