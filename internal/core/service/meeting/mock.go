package meeting

import (
	"context"
	"io"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMeetingService is a mock implementation of MeetingService
type MockMeetingService struct {
	mock.Mock
}

// NewMockMeetingService creates a new MockMeetingService
func NewMockMeetingService() *MockMeetingService {
	return &MockMeetingService{}
}

func (m *MockMeetingService) Create(ctx context.Context, ownerID uuid.UUID, title, description string, category domain.MeetingCategory) (*domain.Meeting, error) {
	args := m.Called(ctx, ownerID, title, description, category)
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *MockMeetingService) AttachAudio(ctx context.Context, id uuid.UUID, audio io.Reader, filename, contentType string, sizeBytes int64) (*domain.Meeting, error) {
	args := m.Called(ctx, id, audio, filename, contentType, sizeBytes)
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *MockMeetingService) Advance(ctx context.Context, id uuid.UUID, next domain.MeetingStatus, payload *domain.StagePayload) error {
	args := m.Called(ctx, id, next, payload)
	return args.Error(0)
}

func (m *MockMeetingService) Complete(ctx context.Context, id uuid.UUID, summary domain.MeetingSummary) error {
	args := m.Called(ctx, id, summary)
	return args.Error(0)
}

func (m *MockMeetingService) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockMeetingService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingService) Get(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *MockMeetingService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Meeting, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

func (m *MockMeetingService) OpenAudio(ctx context.Context, id uuid.UUID) (*domain.AudioFile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.AudioFile), args.Error(1)
}
