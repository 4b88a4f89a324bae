package cleanup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/adapters/blobstore"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/repository"
	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/cleanup"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCleanupService_Sweep_PurgesAndLogsStats(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockBlobs := blobstore.NewMockBlobStore()
	mockRepo := repository.NewMockMeetingRepository()
	service := cleanup.NewCleanupService(mockBlobs, mockRepo, time.Hour, discardLogger)

	mockBlobs.On("PurgeTemp", time.Hour).Return(3, nil)
	mockBlobs.On("PurgeProcessed").Return(2, nil)
	mockBlobs.On("ListAudioIDs").Return([]string{}, nil)
	mockBlobs.On("Stats").Return(&domain.StorageStats{
		Total: domain.AreaStats{Count: 5, Bytes: 1024},
	}, nil)

	// Act
	err := service.Sweep(ctx, time.Now())

	// Assert
	assert.NoError(t, err)
	mockBlobs.AssertExpectations(t)
}

func TestCleanupService_Sweep_ReclaimsOrphanedAudio(t *testing.T) {
	ctx := context.Background()
	mockBlobs := blobstore.NewMockBlobStore()
	mockRepo := repository.NewMockMeetingRepository()
	service := cleanup.NewCleanupService(mockBlobs, mockRepo, time.Hour, discardLogger)

	keptID := uuid.New()
	orphanID := uuid.New()

	mockBlobs.On("PurgeTemp", time.Hour).Return(0, nil)
	mockBlobs.On("PurgeProcessed").Return(0, nil)
	mockBlobs.On("ListAudioIDs").Return([]string{keptID.String(), orphanID.String(), "not-a-uuid"}, nil)
	mockRepo.On("Exists", ctx, keptID).Return(true, nil)
	mockRepo.On("Exists", ctx, orphanID).Return(false, nil)
	mockBlobs.On("DeleteAudio", orphanID).Return(nil)
	mockBlobs.On("Stats").Return(&domain.StorageStats{}, nil)

	err := service.Sweep(ctx, time.Now())

	assert.NoError(t, err)
	mockBlobs.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockBlobs.AssertNotCalled(t, "DeleteAudio", keptID)
}

func TestCleanupService_Sweep_PurgeErrorDoesNotAbortOtherSteps(t *testing.T) {
	ctx := context.Background()
	mockBlobs := blobstore.NewMockBlobStore()
	mockRepo := repository.NewMockMeetingRepository()
	service := cleanup.NewCleanupService(mockBlobs, mockRepo, time.Hour, discardLogger)

	purgeErr := errors.New("disk gone")
	mockBlobs.On("PurgeTemp", time.Hour).Return(0, purgeErr)
	mockBlobs.On("PurgeProcessed").Return(1, nil)
	mockBlobs.On("ListAudioIDs").Return([]string{}, nil)
	mockBlobs.On("Stats").Return(&domain.StorageStats{}, nil)

	err := service.Sweep(ctx, time.Now())

	assert.ErrorIs(t, err, purgeErr)
	// the remaining steps still ran
	mockBlobs.AssertCalled(t, "PurgeProcessed")
	mockBlobs.AssertCalled(t, "Stats")
}
