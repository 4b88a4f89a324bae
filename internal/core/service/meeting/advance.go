package meeting

import (
	"context"
	"fmt"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/google/uuid"
)

// Advance moves a meeting to the next non-terminal stage, merging the stage
// payload atomically with the status write. Terminal transitions go through
// Complete and Fail so their side effects cannot be skipped.
func (s *meetingService) Advance(ctx context.Context, id uuid.UUID, next domain.MeetingStatus, payload *domain.StagePayload) error {

	if next.IsTerminal() {
		return fmt.Errorf("%w: %s must be reached via Complete or Fail", domain.ErrIllegalTransition, next)
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanTransition(m.Status, next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, m.Status, next)
	}

	patch := port.StatusPatch{}
	if payload != nil {
		patch.Transcript = payload.Transcript
		patch.Duration = payload.Duration
	}

	won, err := s.repo.TransitionStatus(ctx, id, m.Status, next, patch)
	if err != nil {
		return fmt.Errorf("could not advance meeting: %w", err)
	}
	if !won {
		return fmt.Errorf("%w: meeting %s left %s concurrently", domain.ErrIllegalTransition, id, m.Status)
	}

	return nil
}
