package pipeline

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
)

// Each engine stage runs under its own timeout; a timed-out stage surfaces as
// an error and resolves the meeting to failed at the call site.

func (s *pipelineService) processAudio(ctx context.Context, path string) (*port.ProcessedAudio, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.engine.ProcessAudio(ctx, path)
}

func (s *pipelineService) transcribe(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.engine.Transcribe(ctx, path)
}

func (s *pipelineService) analyze(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.engine.Analyze(ctx, transcript)
}

func (s *pipelineService) summarize(ctx context.Context, transcript, title string) (*domain.MeetingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.engine.Summarize(ctx, transcript, title)
}
