package meeting_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/haris936hk/EchoNote-sub002/internal/adapters/blobstore"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/eventbroker"
	"github.com/haris936hk/EchoNote-sub002/internal/adapters/repository"
	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/meeting"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/notify"
)

const uploadSubject = "echonote.meeting.uploaded"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fixture bundles the service under test with its mocked collaborators.
type fixture struct {
	repo      *repository.MockMeetingRepository
	blobs     *blobstore.MockBlobStore
	notifier  *notify.MockNotifier
	publisher *eventbroker.MockEventPublisher
	svc       port.MeetingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:      repository.NewMockMeetingRepository(),
		blobs:     blobstore.NewMockBlobStore(),
		notifier:  notify.NewMockNotifier(),
		publisher: eventbroker.NewMockEventPublisher(),
	}
	f.svc = meeting.NewMeetingService(
		f.repo, f.blobs, f.notifier, f.publisher,
		config.UploadConfig{MaxSizeBytes: 50 * 1024 * 1024},
		uploadSubject,
		discardLogger,
	)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.repo.AssertExpectations(t)
	f.blobs.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}
