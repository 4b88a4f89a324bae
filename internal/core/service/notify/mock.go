package notify

import (
	"context"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) MeetingCompleted(ctx context.Context, meeting domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockNotifier) MeetingFailed(ctx context.Context, meeting domain.Meeting, reason string) error {
	args := m.Called(ctx, meeting, reason)
	return args.Error(0)
}
