package meeting

import (
	"context"
	"fmt"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/google/uuid"
)

// Complete promotes the temp upload to the durable audio area, records the
// resulting URL, size and summary atomically with the summarizing -> completed
// write, and dispatches the completed notification. If promotion fails the
// meeting is forced to failed, never left half-updated. If a concurrent Fail
// already won, the freshly promoted file is removed and the call is a no-op.
func (s *meetingService) Complete(ctx context.Context, id uuid.UUID, summary domain.MeetingSummary) error {

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status.IsTerminal() {
		// lost the race against a concurrent terminal transition
		return nil
	}
	if m.Status != domain.MeetingStatusSummarizing {
		return fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, m.Status, domain.MeetingStatusCompleted)
	}
	if m.TempRef == "" {
		return fmt.Errorf("%w: meeting %s has no temp upload to promote", domain.ErrStorage, id)
	}

	af, err := s.blobs.PromoteAudio(m.TempRef, id)
	if err != nil {
		reason := fmt.Sprintf("audio promotion failed: %v", err)
		if failErr := s.Fail(ctx, id, reason); failErr != nil {
			s.logger.Error("failed to fail meeting after promotion error", "meeting_id", id, "error", failErr)
		}
		return fmt.Errorf("could not promote audio: %w", err)
	}

	patch := port.StatusPatch{
		AudioFilename: &af.Name,
		AudioURL:      &af.URL,
		AudioSize:     &af.Size,
		Summary:       &summary,
		ClearTempRef:  true,
	}

	won, err := s.repo.TransitionStatus(ctx, id,
		domain.MeetingStatusSummarizing, domain.MeetingStatusCompleted, patch)
	if err != nil {
		return fmt.Errorf("could not complete meeting: %w", err)
	}
	if !won {
		// a concurrent Fail claimed the terminal slot; reconcile our promotion
		if delErr := s.blobs.DeleteAudio(id); delErr != nil {
			s.logger.Error("failed to reconcile promoted audio", "meeting_id", id, "error", delErr)
		}
		s.logger.Info("complete lost terminal race", "meeting_id", id)
		return nil
	}

	m.Status = domain.MeetingStatusCompleted
	m.AudioFilename = af.Name
	m.AudioURL = af.URL
	m.AudioSize = af.Size
	m.Summary = &summary

	if err := s.notifier.MeetingCompleted(ctx, *m); err != nil {
		s.logger.Error("failed to dispatch completed notification", "meeting_id", id, "error", err)
	}

	return nil
}
