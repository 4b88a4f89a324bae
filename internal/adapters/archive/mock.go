package archive

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAudioArchiver is a mock implementation of AudioArchiver
type MockAudioArchiver struct {
	mock.Mock
}

// NewMockAudioArchiver creates a new MockAudioArchiver
func NewMockAudioArchiver() *MockAudioArchiver {
	return &MockAudioArchiver{}
}

func (m *MockAudioArchiver) Archive(ctx context.Context, meetingID uuid.UUID, path string) error {
	args := m.Called(ctx, meetingID, path)
	return args.Error(0)
}
