package meeting

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

func (s *meetingService) Get(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *meetingService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Meeting, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// OpenAudio resolves the durable audio file for streaming. The exact filename
// stored on the record is used, never a directory prefix scan.
func (s *meetingService) OpenAudio(ctx context.Context, id uuid.UUID) (*domain.AudioFile, error) {

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.AudioFilename == "" {
		return nil, domain.ErrAudioNotFound
	}

	return s.blobs.OpenAudio(m.AudioFilename)
}
