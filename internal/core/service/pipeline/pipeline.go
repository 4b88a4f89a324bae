package pipeline

import (
	"log/slog"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
)

type pipelineService struct {
	meetings     port.MeetingService
	engine       port.ProcessingEngine
	blobs        port.BlobStore
	archiver     port.AudioArchiver
	stageTimeout time.Duration
	logger       *slog.Logger
}

// NewPipelineService creates the service driving uploaded meetings through the
// external processing engine. archiver may be nil when archival is disabled.
func NewPipelineService(
	meetings port.MeetingService,
	engine port.ProcessingEngine,
	blobs port.BlobStore,
	archiver port.AudioArchiver,
	stageTimeout time.Duration,
	logger *slog.Logger,
) port.MessageService {
	return &pipelineService{
		meetings:     meetings,
		engine:       engine,
		blobs:        blobs,
		archiver:     archiver,
		stageTimeout: stageTimeout,
		logger:       logger,
	}
}
