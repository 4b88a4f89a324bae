package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/google/uuid"
)

// AttachAudio validates the uploaded blob, stores it in the temp area, records
// the temp reference on the meeting and advances uploading -> processing_audio.
// On success an upload event is published for the processing worker.
func (s *meetingService) AttachAudio(ctx context.Context, id uuid.UUID, audio io.Reader, filename, contentType string, sizeBytes int64) (*domain.Meeting, error) {

	if err := s.validateAudioFile(filename, contentType, sizeBytes); err != nil {
		return nil, err
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != domain.MeetingStatusUploading {
		return nil, fmt.Errorf("%w: cannot attach audio in status %s", domain.ErrIllegalTransition, m.Status)
	}

	tf, err := s.blobs.StoreTemp(audio, filename)
	if err != nil {
		return nil, fmt.Errorf("could not store upload: %w", err)
	}

	won, err := s.repo.TransitionStatus(ctx, id,
		domain.MeetingStatusUploading, domain.MeetingStatusProcessingAudio,
		port.StatusPatch{TempRef: &tf.Name})
	if err != nil {
		s.discardTemp(tf.Name)
		return nil, fmt.Errorf("could not record upload: %w", err)
	}
	if !won {
		// a concurrent attach or fail moved the meeting first
		s.discardTemp(tf.Name)
		return nil, fmt.Errorf("%w: meeting %s left uploading concurrently", domain.ErrIllegalTransition, id)
	}

	m.Status = domain.MeetingStatusProcessingAudio
	m.TempRef = tf.Name

	event := domain.MeetingUploaded{
		MeetingID: id,
		TempRef:   tf.Name,
		Filename:  filename,
		SizeBytes: tf.Size,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("could not marshal upload event: %w", err)
	}
	if err := s.publisher.Publish(ctx, s.uploadSubject, data); err != nil {
		// the worker will never see this upload, resolve to failed rather than
		// leaving the meeting stuck in processing_audio
		if failErr := s.Fail(ctx, id, "upload event publish failed"); failErr != nil {
			s.logger.Error("failed to fail meeting after publish error", "meeting_id", id, "error", failErr)
		}
		return nil, fmt.Errorf("could not publish upload event: %w", err)
	}

	return m, nil
}

func (s *meetingService) discardTemp(name string) {
	if err := s.blobs.DeleteTemp(name); err != nil {
		s.logger.Error("failed to discard temp file", "name", name, "error", err)
	}
}
