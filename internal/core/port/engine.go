package port

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// ProcessedAudio is the result of the audio normalization stage
type ProcessedAudio struct {
	Path     string
	Duration float64
}

// ProcessingEngine is the external transcription/summarization pipeline.
// It is opaque to the lifecycle controller: each stage takes input, returns
// output, and any error resolves the meeting to failed at the call site.
type ProcessingEngine interface {
	ProcessAudio(ctx context.Context, audioPath string) (*ProcessedAudio, error)
	Transcribe(ctx context.Context, audioPath string) (string, error)
	Analyze(ctx context.Context, transcript string) (string, error)
	Summarize(ctx context.Context, transcript, title string) (*domain.MeetingSummary, error)
}
