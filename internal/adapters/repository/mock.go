package repository

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMeetingRepository is a mock implementation of MeetingRepository
type MockMeetingRepository struct {
	mock.Mock
}

// NewMockMeetingRepository creates a new MockMeetingRepository
func NewMockMeetingRepository() *MockMeetingRepository {
	return &MockMeetingRepository{}
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Meeting, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.MeetingStatus, patch port.StatusPatch) (bool, error) {
	args := m.Called(ctx, id, from, to, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockMeetingRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	args := m.Called(ctx, id, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
