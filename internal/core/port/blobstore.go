package port

import (
	"io"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// BlobStore is an interface to define blob storage interactions across the
// three file areas: temp (ephemeral uploads), processed (transient derived
// artifacts) and audio (durable, one file per meeting id).
type BlobStore interface {
	// StoreTemp writes the blob under a freshly generated id in the temp area.
	// A generated id colliding with an existing file is an error, never an
	// overwrite.
	StoreTemp(r io.Reader, originalName string) (*domain.TempFile, error)
	// TempPath resolves the absolute path of a temp file by name.
	TempPath(name string) string
	// PromoteAudio moves a temp file into the audio area under the meeting id,
	// replacing any previous file for that id (reprocessing case).
	PromoteAudio(tempName string, meetingID uuid.UUID) (*domain.AudioFile, error)
	// OpenAudio locates a durable file by its exact stored filename.
	OpenAudio(filename string) (*domain.AudioFile, error)
	DeleteTemp(name string) error
	// DeleteAudio removes the durable file for a meeting id; absent is a no-op.
	DeleteAudio(meetingID uuid.UUID) error
	PurgeTemp(maxAge time.Duration) (int, error)
	PurgeProcessed() (int, error)
	// ListAudioIDs returns the meeting ids the audio area holds files for.
	ListAudioIDs() ([]string, error)
	Stats() (*domain.StorageStats, error)
}
