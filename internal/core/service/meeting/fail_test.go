package meeting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFail_DiscardsTempAndNotifies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()

	f.repo.On("MarkFailed", ctx, meetingID, "transcription failed").Return(true, nil)
	f.repo.On("FindByID", ctx, meetingID).Return(&domain.Meeting{
		ID: meetingID, Status: domain.MeetingStatusFailed,
		TempRef: "deadbeef.wav", FailureReason: "transcription failed",
	}, nil)
	f.blobs.On("DeleteTemp", "deadbeef.wav").Return(nil)
	f.notifier.On("MeetingFailed", ctx, mock.MatchedBy(func(m domain.Meeting) bool {
		return m.ID == meetingID
	}), "transcription failed").Return(nil)

	err := f.svc.Fail(ctx, meetingID, "transcription failed")

	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestFail_AlreadyTerminalIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()

	f.repo.On("MarkFailed", ctx, meetingID, "late failure").Return(false, nil)

	err := f.svc.Fail(ctx, meetingID, "late failure")

	assert.NoError(t, err)
	f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "MeetingFailed", mock.Anything, mock.Anything, mock.Anything)
}

func TestFail_NoTempFileToDiscard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()

	f.repo.On("MarkFailed", ctx, meetingID, "boom").Return(true, nil)
	f.repo.On("FindByID", ctx, meetingID).Return(&domain.Meeting{
		ID: meetingID, Status: domain.MeetingStatusFailed,
	}, nil)
	f.notifier.On("MeetingFailed", ctx, mock.Anything, "boom").Return(nil)

	err := f.svc.Fail(ctx, meetingID, "boom")

	assert.NoError(t, err)
	f.blobs.AssertNotCalled(t, "DeleteTemp", mock.Anything)
}

func TestFail_RepositoryError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	meetingID := uuid.New()

	f.repo.On("MarkFailed", ctx, meetingID, "boom").Return(false, errors.New("db down"))

	err := f.svc.Fail(ctx, meetingID, "boom")

	assert.Error(t, err)
}
