package cleanup

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCleanupService is a mock implementation of CleanupService
type MockCleanupService struct {
	mock.Mock
}

// NewMockCleanupService creates a new MockCleanupService
func NewMockCleanupService() *MockCleanupService {
	return &MockCleanupService{}
}

func (m *MockCleanupService) Sweep(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}
