package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// HandleMessage consumes a meeting.uploaded event and runs the pipeline.
// Returning an error naks the message for redelivery; errors that were
// resolved into a failed meeting are swallowed so the event is acked.
func (s *pipelineService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.MeetingUploaded
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal upload event: %v", err)
	}

	s.logger.Info("processing uploaded meeting", "meeting_id", event.MeetingID, "temp_ref", event.TempRef)

	return s.process(ctx, event)
}

func (s *pipelineService) process(ctx context.Context, event domain.MeetingUploaded) error {

	m, err := s.meetings.Get(ctx, event.MeetingID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			// deleted while queued
			s.logger.Info("meeting gone, skipping", "meeting_id", event.MeetingID)
			return nil
		}
		return err
	}
	if m.Status.IsTerminal() {
		s.logger.Info("meeting already terminal, skipping", "meeting_id", m.ID, "status", m.Status)
		return nil
	}
	if m.Status != domain.MeetingStatusProcessingAudio {
		// a redelivery caught the meeting mid-pipeline after a worker crash;
		// there is no resume, so resolve it rather than leave it pending
		return s.resolve(ctx, m.ID, "processing interrupted", nil)
	}

	tempPath := s.blobs.TempPath(event.TempRef)

	processed, err := s.processAudio(ctx, tempPath)
	if err != nil {
		return s.resolve(ctx, m.ID, "audio processing failed", err)
	}
	if err := s.advance(ctx, m.ID, domain.MeetingStatusTranscribing,
		&domain.StagePayload{Duration: &processed.Duration}); err != nil {
		return s.skipOrRetry(m.ID, err)
	}

	transcript, err := s.transcribe(ctx, processed.Path)
	if err != nil {
		return s.resolve(ctx, m.ID, "transcription failed", err)
	}
	if err := s.advance(ctx, m.ID, domain.MeetingStatusProcessingNLP,
		&domain.StagePayload{Transcript: &transcript}); err != nil {
		return s.skipOrRetry(m.ID, err)
	}

	cleaned, err := s.analyze(ctx, transcript)
	if err != nil {
		return s.resolve(ctx, m.ID, "nlp processing failed", err)
	}
	if err := s.advance(ctx, m.ID, domain.MeetingStatusSummarizing,
		&domain.StagePayload{Transcript: &cleaned}); err != nil {
		return s.skipOrRetry(m.ID, err)
	}

	summary, err := s.summarize(ctx, cleaned, m.Title)
	if err != nil {
		return s.resolve(ctx, m.ID, "summarization failed", err)
	}

	if err := s.meetings.Complete(ctx, m.ID, *summary); err != nil {
		s.logger.Error("completion failed", "meeting_id", m.ID, "error", err)
		// Complete already forced the meeting to failed where applicable
		return nil
	}

	s.archive(ctx, m.ID)
	return nil
}

func (s *pipelineService) advance(ctx context.Context, id uuid.UUID, next domain.MeetingStatus, payload *domain.StagePayload) error {
	return s.meetings.Advance(ctx, id, next, payload)
}

// resolve turns a stage error into a failed meeting. The event is acked once
// the failure is recorded; only a failure to record it triggers redelivery.
func (s *pipelineService) resolve(ctx context.Context, id uuid.UUID, reason string, cause error) error {
	if cause != nil {
		reason = fmt.Sprintf("%s: %v", reason, cause)
		s.logger.Error("pipeline stage failed", "meeting_id", id, "error", cause)
	}
	if err := s.meetings.Fail(ctx, id, reason); err != nil {
		return fmt.Errorf("could not record failure for meeting %s: %w", id, err)
	}
	return nil
}

// skipOrRetry distinguishes a lost transition race (ack and move on) from an
// infrastructure error (nak for redelivery).
func (s *pipelineService) skipOrRetry(id uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrIllegalTransition) || errors.Is(err, domain.ErrMeetingNotFound) {
		s.logger.Info("meeting moved concurrently, skipping", "meeting_id", id, "reason", err)
		return nil
	}
	return err
}

func (s *pipelineService) archive(ctx context.Context, id uuid.UUID) {
	if s.archiver == nil {
		return
	}

	m, err := s.meetings.Get(ctx, id)
	if err != nil || m.Status != domain.MeetingStatusCompleted || m.AudioFilename == "" {
		return
	}

	af, err := s.blobs.OpenAudio(m.AudioFilename)
	if err != nil {
		s.logger.Error("could not open audio for archival", "meeting_id", id, "error", err)
		return
	}

	if err := s.archiver.Archive(ctx, id, af.Path); err != nil {
		s.logger.Error("audio archival failed", "meeting_id", id, "error", err)
	}
}
