package cleanup

import (
	"log/slog"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
)

type cleanupService struct {
	blobs      port.BlobStore
	repo       port.MeetingRepository
	tempMaxAge time.Duration
	logger     *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(blobs port.BlobStore, repo port.MeetingRepository, tempMaxAge time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		blobs:      blobs,
		repo:       repo,
		tempMaxAge: tempMaxAge,
		logger:     logger,
	}
}
