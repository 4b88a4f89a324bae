package meeting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Delete removes the meeting record, then its durable audio file. The record
// goes first so a failed file deletion never orphans a row; a file left behind
// is reclaimed by the cleanup sweep's orphan pass.
func (s *meetingService) Delete(ctx context.Context, id uuid.UUID) error {

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("could not delete meeting: %w", err)
	}

	if m.TempRef != "" {
		s.discardTemp(m.TempRef)
	}

	if err := s.blobs.DeleteAudio(id); err != nil {
		s.logger.Error("failed to delete audio file, orphan sweep will retry", "meeting_id", id, "error", err)
	}

	return nil
}
