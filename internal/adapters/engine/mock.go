package engine

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockProcessingEngine is a mock implementation of ProcessingEngine
type MockProcessingEngine struct {
	mock.Mock
}

// NewMockProcessingEngine creates a new MockProcessingEngine
func NewMockProcessingEngine() *MockProcessingEngine {
	return &MockProcessingEngine{}
}

func (m *MockProcessingEngine) ProcessAudio(ctx context.Context, audioPath string) (*port.ProcessedAudio, error) {
	args := m.Called(ctx, audioPath)
	return args.Get(0).(*port.ProcessedAudio), args.Error(1)
}

func (m *MockProcessingEngine) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)
	return args.String(0), args.Error(1)
}

func (m *MockProcessingEngine) Analyze(ctx context.Context, transcript string) (string, error) {
	args := m.Called(ctx, transcript)
	return args.String(0), args.Error(1)
}

func (m *MockProcessingEngine) Summarize(ctx context.Context, transcript, title string) (*domain.MeetingSummary, error) {
	args := m.Called(ctx, transcript, title)
	return args.Get(0).(*domain.MeetingSummary), args.Error(1)
}
