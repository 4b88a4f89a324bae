package meeting_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
	"github.com/haris936hk/EchoNote-sub002/internal/core/service/meeting"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const maxUploadBytes = 50 * 1024 * 1024

func TestAttachAudio_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()
	audio := strings.NewReader("fake audio bytes")

	f.repo.On("FindByID", ctx, meetingID).
		Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusUploading}, nil)
	f.blobs.On("StoreTemp", audio, "standup.mp3").
		Return(&domain.TempFile{ID: "deadbeef", Name: "deadbeef.mp3", Size: 2048}, nil)
	f.repo.On("TransitionStatus", ctx, meetingID,
		domain.MeetingStatusUploading, domain.MeetingStatusProcessingAudio,
		mock.MatchedBy(func(p port.StatusPatch) bool {
			return p.TempRef != nil && *p.TempRef == "deadbeef.mp3"
		})).Return(true, nil)
	f.publisher.On("Publish", ctx, uploadSubject, mock.MatchedBy(func(data []byte) bool {
		return strings.Contains(string(data), meetingID.String()) &&
			strings.Contains(string(data), "deadbeef.mp3")
	})).Return(nil)

	// Act
	m, err := f.svc.AttachAudio(ctx, meetingID, audio, "standup.mp3", "audio/mpeg", 2048)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.MeetingStatusProcessingAudio, m.Status)
	assert.Equal(t, "deadbeef.mp3", m.TempRef)
	f.assertExpectations(t)
}

func TestAttachAudio_SizeLimits(t *testing.T) {
	tests := []struct {
		name      string
		sizeBytes int64
		wantErr   bool
	}{
		{"single byte", 1, false},
		{"small clip", 512, false},
		{"at maximum", maxUploadBytes, false},
		{"one byte over maximum", maxUploadBytes + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			meetingID := uuid.New()
			audio := strings.NewReader("x")

			if !tt.wantErr {
				f.repo.On("FindByID", ctx, meetingID).
					Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusUploading}, nil)
				f.blobs.On("StoreTemp", audio, "talk.wav").
					Return(&domain.TempFile{ID: "cafe", Name: "cafe.wav", Size: tt.sizeBytes}, nil)
				f.repo.On("TransitionStatus", ctx, meetingID,
					domain.MeetingStatusUploading, domain.MeetingStatusProcessingAudio,
					mock.Anything).Return(true, nil)
				f.publisher.On("Publish", ctx, uploadSubject, mock.Anything).Return(nil)
			}

			_, err := f.svc.AttachAudio(ctx, meetingID, audio, "talk.wav", "audio/wav", tt.sizeBytes)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
				f.blobs.AssertNotCalled(t, "StoreTemp", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAttachAudio_ConfiguredMinimumSize(t *testing.T) {
	// The floor is opt-in; it is off by default and only rejects when set.
	ctx := context.Background()
	f := newFixture(t)
	f.svc = meeting.NewMeetingService(
		f.repo, f.blobs, f.notifier, f.publisher,
		config.UploadConfig{MaxSizeBytes: maxUploadBytes, MinSizeBytes: 1024},
		uploadSubject,
		discardLogger,
	)

	_, err := f.svc.AttachAudio(ctx, uuid.New(), strings.NewReader("x"), "clip.mp3", "audio/mpeg", 512)

	assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
	f.blobs.AssertNotCalled(t, "StoreTemp", mock.Anything, mock.Anything)
}

func TestAttachAudio_RejectsUnsupportedMedia(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
	}{
		{"unsupported mime type", "talk.ogg", "audio/ogg"},
		{"extension mismatch", "talk.mp3", "audio/wav"},
		{"no extension", "talk", "audio/mpeg"},
		{"garbage content type", "talk.mp3", ";;;"},
		{"video container with audio extension", "talk.wav", "video/mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.AttachAudio(context.Background(), uuid.New(),
				strings.NewReader("x"), tt.filename, tt.contentType, 2048)

			assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
			f.blobs.AssertNotCalled(t, "StoreTemp", mock.Anything, mock.Anything)
		})
	}
}

func TestAttachAudio_AcceptsParametrizedContentType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()
	audio := strings.NewReader("x")

	f.repo.On("FindByID", ctx, meetingID).
		Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusUploading}, nil)
	f.blobs.On("StoreTemp", audio, "call.m4a").
		Return(&domain.TempFile{ID: "beef", Name: "beef.m4a", Size: 4096}, nil)
	f.repo.On("TransitionStatus", ctx, meetingID, domain.MeetingStatusUploading,
		domain.MeetingStatusProcessingAudio, mock.Anything).Return(true, nil)
	f.publisher.On("Publish", ctx, uploadSubject, mock.Anything).Return(nil)

	_, err := f.svc.AttachAudio(ctx, meetingID, audio, "call.m4a", "audio/mp4; codecs=mp4a.40.2", 4096)

	assert.NoError(t, err)
}

func TestAttachAudio_WrongStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()

	f.repo.On("FindByID", ctx, meetingID).
		Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusTranscribing}, nil)

	_, err := f.svc.AttachAudio(ctx, meetingID, strings.NewReader("x"), "a.mp3", "audio/mpeg", 2048)

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	f.blobs.AssertNotCalled(t, "StoreTemp", mock.Anything, mock.Anything)
}

func TestAttachAudio_MeetingNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()

	f.repo.On("FindByID", ctx, meetingID).
		Return((*domain.Meeting)(nil), domain.ErrMeetingNotFound)

	_, err := f.svc.AttachAudio(ctx, meetingID, strings.NewReader("x"), "a.mp3", "audio/mpeg", 2048)

	assert.ErrorIs(t, err, domain.ErrMeetingNotFound)
}

func TestAttachAudio_LostRaceDiscardsTemp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()
	audio := strings.NewReader("x")

	f.repo.On("FindByID", ctx, meetingID).
		Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusUploading}, nil)
	f.blobs.On("StoreTemp", audio, "a.mp3").
		Return(&domain.TempFile{ID: "feed", Name: "feed.mp3", Size: 2048}, nil)
	f.repo.On("TransitionStatus", ctx, meetingID, domain.MeetingStatusUploading,
		domain.MeetingStatusProcessingAudio, mock.Anything).Return(false, nil)
	f.blobs.On("DeleteTemp", "feed.mp3").Return(nil)

	_, err := f.svc.AttachAudio(ctx, meetingID, audio, "a.mp3", "audio/mpeg", 2048)

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	f.blobs.AssertCalled(t, "DeleteTemp", "feed.mp3")
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachAudio_PublishErrorFailsMeeting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()
	audio := strings.NewReader("x")

	f.repo.On("FindByID", ctx, meetingID).
		Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusUploading}, nil).Once()
	f.blobs.On("StoreTemp", audio, "a.mp3").
		Return(&domain.TempFile{ID: "feed", Name: "feed.mp3", Size: 2048}, nil)
	f.repo.On("TransitionStatus", ctx, meetingID, domain.MeetingStatusUploading,
		domain.MeetingStatusProcessingAudio, mock.Anything).Return(true, nil)
	f.publisher.On("Publish", ctx, uploadSubject, mock.Anything).
		Return(errors.New("nats unreachable"))

	// Fail path triggered by the publish error
	f.repo.On("MarkFailed", ctx, meetingID, mock.Anything).Return(true, nil)
	f.repo.On("FindByID", ctx, meetingID).
		Return(&domain.Meeting{ID: meetingID, Status: domain.MeetingStatusFailed, TempRef: "feed.mp3"}, nil).Once()
	f.blobs.On("DeleteTemp", "feed.mp3").Return(nil)
	f.notifier.On("MeetingFailed", ctx, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.AttachAudio(ctx, meetingID, audio, "a.mp3", "audio/mpeg", 2048)

	require.Error(t, err)
	f.repo.AssertCalled(t, "MarkFailed", ctx, meetingID, mock.Anything)
}
