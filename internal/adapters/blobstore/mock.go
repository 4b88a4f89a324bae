package blobstore

import (
	"io"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBlobStore is a mock implementation of BlobStore
type MockBlobStore struct {
	mock.Mock
}

// NewMockBlobStore creates a new MockBlobStore
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{}
}

func (m *MockBlobStore) StoreTemp(r io.Reader, originalName string) (*domain.TempFile, error) {
	args := m.Called(r, originalName)
	return args.Get(0).(*domain.TempFile), args.Error(1)
}

func (m *MockBlobStore) TempPath(name string) string {
	args := m.Called(name)
	return args.String(0)
}

func (m *MockBlobStore) PromoteAudio(tempName string, meetingID uuid.UUID) (*domain.AudioFile, error) {
	args := m.Called(tempName, meetingID)
	return args.Get(0).(*domain.AudioFile), args.Error(1)
}

func (m *MockBlobStore) OpenAudio(filename string) (*domain.AudioFile, error) {
	args := m.Called(filename)
	return args.Get(0).(*domain.AudioFile), args.Error(1)
}

func (m *MockBlobStore) DeleteTemp(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockBlobStore) DeleteAudio(meetingID uuid.UUID) error {
	args := m.Called(meetingID)
	return args.Error(0)
}

func (m *MockBlobStore) PurgeTemp(maxAge time.Duration) (int, error) {
	args := m.Called(maxAge)
	return args.Int(0), args.Error(1)
}

func (m *MockBlobStore) PurgeProcessed() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockBlobStore) ListAudioIDs() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlobStore) Stats() (*domain.StorageStats, error) {
	args := m.Called()
	return args.Get(0).(*domain.StorageStats), args.Error(1)
}
