package meeting

import (
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"
)

type meetingService struct {
	repo          port.MeetingRepository
	blobs         port.BlobStore
	notifier      port.Notifier
	publisher     port.EventPublisher
	uploadCfg     config.UploadConfig
	uploadSubject string
	logger        *slog.Logger
}

// NewMeetingService creates a new meeting lifecycle service
func NewMeetingService(
	repo port.MeetingRepository,
	blobs port.BlobStore,
	notifier port.Notifier,
	publisher port.EventPublisher,
	uploadCfg config.UploadConfig,
	uploadSubject string,
	logger *slog.Logger,
) port.MeetingService {
	return &meetingService{
		repo:          repo,
		blobs:         blobs,
		notifier:      notifier,
		publisher:     publisher,
		uploadCfg:     uploadCfg,
		uploadSubject: uploadSubject,
		logger:        logger,
	}
}

// AllowedAudioMimeTypes is a whitelist of supported audio MIME types and their
// extensions. Deterministic, does NOT rely on OS mime databases (Docker-safe).
var AllowedAudioMimeTypes = map[string][]string{
	"audio/mpeg":  {".mp3"},
	"audio/mp3":   {".mp3"},
	"audio/wav":   {".wav"},
	"audio/x-wav": {".wav"},
	"audio/wave":  {".wav"},
	"audio/mp4":   {".m4a", ".mp4"},
	"audio/x-m4a": {".m4a"},
	"video/mp4":   {".mp4"},
}

func (s *meetingService) validateAudioFile(filename, contentType string, sizeBytes int64) error {

	if s.uploadCfg.MinSizeBytes > 0 && sizeBytes < s.uploadCfg.MinSizeBytes {
		return fmt.Errorf("%w: file too small (%d bytes, minimum %d)",
			domain.ErrUnsupportedMedia, sizeBytes, s.uploadCfg.MinSizeBytes)
	}
	if sizeBytes > s.uploadCfg.MaxSizeBytes {
		return fmt.Errorf("%w: file too big (%s, maximum %s)",
			domain.ErrUnsupportedMedia, domain.FormatBytes(sizeBytes), domain.FormatBytes(s.uploadCfg.MaxSizeBytes))
	}

	mimeType := extractMimeType(contentType)
	if mimeType == "" {
		return fmt.Errorf("%w: invalid content type: %s", domain.ErrUnsupportedMedia, contentType)
	}

	allowedExts, ok := AllowedAudioMimeTypes[mimeType]
	if !ok {
		return fmt.Errorf("%w: unsupported MIME type: %s", domain.ErrUnsupportedMedia, mimeType)
	}

	if err := validateExtension(filename, allowedExts); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnsupportedMedia, err)
	}

	return nil
}

func validateExtension(filename string, allowedExts []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("no file extension found")
	}

	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}

	return fmt.Errorf("extension %s is not allowed (expected one of: %v)", ext, allowedExts)
}

func extractMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}
