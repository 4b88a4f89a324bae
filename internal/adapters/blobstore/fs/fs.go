package fs

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	gopath "path"
	"path/filepath"
	"strings"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// mimeByExtension maps durable audio extensions to their streaming MIME type.
// Deterministic, no OS mime database involved.
var mimeByExtension = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
	".mp4": "video/mp4",
}

// Store is a filesystem blob store managing three areas under one root:
// temp (ephemeral uploads), processed (transient derived artifacts) and
// audio (durable, one file per meeting id).
type Store struct {
	tempDir      string
	processedDir string
	audioDir     string
	publicBase   string
	logger       *slog.Logger
}

// NewStore creates the store and ensures all three directories exist.
// Creation is idempotent.
func NewStore(cfg config.StorageConfig, logger *slog.Logger) (*Store, error) {
	s := &Store{
		tempDir:      filepath.Join(cfg.Root, "temp"),
		processedDir: filepath.Join(cfg.Root, "processed"),
		audioDir:     filepath.Join(cfg.Root, "audio"),
		publicBase:   cfg.PublicBasePath,
		logger:       logger,
	}

	for _, dir := range []string{s.tempDir, s.processedDir, s.audioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create dir %s: %w", domain.ErrStorageInit, dir, err)
		}
	}

	return s, nil
}

// ProcessedDir exposes the processed area for the processing engine's artifacts
func (s *Store) ProcessedDir() string {
	return s.processedDir
}

// StoreTemp writes the blob under a freshly generated 128-bit hex id in the
// temp area. An id collision is an error, never an overwrite.
func (s *Store) StoreTemp(r io.Reader, originalName string) (*domain.TempFile, error) {
	id := uuid.New()
	hexID := hex.EncodeToString(id[:])
	name := hexID + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.tempDir, name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTempFileExists, name)
		}
		return nil, fmt.Errorf("%w: create temp file: %w", domain.ErrStorage, err)
	}

	size, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		os.Remove(path)
		return nil, fmt.Errorf("%w: write temp file: %w", domain.ErrStorage, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: close temp file: %w", domain.ErrStorage, err)
	}

	return &domain.TempFile{ID: hexID, Name: name, Path: path, Size: size}, nil
}

// TempPath resolves the absolute path of a temp file by name
func (s *Store) TempPath(name string) string {
	return filepath.Join(s.tempDir, name)
}

// PromoteAudio moves a temp file into the audio area as <meetingID><ext>,
// replacing any previous file for that meeting id (reprocessing case).
func (s *Store) PromoteAudio(tempName string, meetingID uuid.UUID) (*domain.AudioFile, error) {
	src := filepath.Join(s.tempDir, tempName)
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%w: temp file %s: %w", domain.ErrStorage, tempName, err)
	}

	if err := s.DeleteAudio(meetingID); err != nil {
		return nil, err
	}

	name := meetingID.String() + strings.ToLower(filepath.Ext(tempName))
	dst := filepath.Join(s.audioDir, name)

	if err := os.Rename(src, dst); err != nil {
		// temp and audio may live on different filesystems
		if copyErr := copyFile(src, dst); copyErr != nil {
			return nil, fmt.Errorf("%w: promote %s: %w", domain.ErrStorage, tempName, copyErr)
		}
		if err := os.Remove(src); err != nil {
			s.logger.Warn("failed to remove temp file after promote", "name", tempName, "error", err)
		}
	}

	return &domain.AudioFile{
		Name:     name,
		Path:     dst,
		URL:      gopath.Join(s.publicBase, name),
		MimeType: mimeByExtension[strings.ToLower(filepath.Ext(name))],
		Size:     info.Size(),
	}, nil
}

// OpenAudio locates a durable file by its exact stored filename
func (s *Store) OpenAudio(filename string) (*domain.AudioFile, error) {
	path := filepath.Join(s.audioDir, filepath.Base(filename))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAudioNotFound, filename)
		}
		return nil, fmt.Errorf("%w: stat audio file: %w", domain.ErrStorage, err)
	}

	mimeType, ok := mimeByExtension[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		mimeType = "application/octet-stream"
	}

	return &domain.AudioFile{
		Name:     info.Name(),
		Path:     path,
		URL:      gopath.Join(s.publicBase, info.Name()),
		MimeType: mimeType,
		Size:     info.Size(),
	}, nil
}

// DeleteTemp removes a temp file; absent is a no-op
func (s *Store) DeleteTemp(name string) error {
	err := os.Remove(filepath.Join(s.tempDir, filepath.Base(name)))
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("%w: delete temp file: %w", domain.ErrStorage, err)
	}
	return nil
}

// DeleteAudio removes the durable file for a meeting id; absent is a no-op
func (s *Store) DeleteAudio(meetingID uuid.UUID) error {
	matches, err := filepath.Glob(filepath.Join(s.audioDir, meetingID.String()+".*"))
	if err != nil {
		return fmt.Errorf("%w: scan audio dir: %w", domain.ErrStorage, err)
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("%w: delete audio file: %w", domain.ErrStorage, err)
		}
	}
	return nil
}

// PurgeTemp deletes every temp entry older than maxAge and returns the count.
// A file disappearing between listing and deletion is skipped, not fatal.
func (s *Store) PurgeTemp(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return 0, fmt.Errorf("%w: read temp dir: %w", domain.ErrStorage, err)
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.tempDir, entry.Name())); err != nil {
			if !errors.Is(err, iofs.ErrNotExist) {
				s.logger.Warn("failed to purge temp file", "name", entry.Name(), "error", err)
			}
			continue
		}
		deleted++
	}

	return deleted, nil
}

// PurgeProcessed deletes every entry in the processed area unconditionally
func (s *Store) PurgeProcessed() (int, error) {
	entries, err := os.ReadDir(s.processedDir)
	if err != nil {
		return 0, fmt.Errorf("%w: read processed dir: %w", domain.ErrStorage, err)
	}

	deleted := 0
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(s.processedDir, entry.Name())); err != nil {
			s.logger.Warn("failed to purge processed entry", "name", entry.Name(), "error", err)
			continue
		}
		deleted++
	}

	return deleted, nil
}

// ListAudioIDs returns the meeting ids the audio area holds files for
func (s *Store) ListAudioIDs() ([]string, error) {
	entries, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read audio dir: %w", domain.ErrStorage, err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ids = append(ids, strings.TrimSuffix(name, filepath.Ext(name)))
	}

	return ids, nil
}

// Stats walks each area computing aggregate file counts and byte sizes
func (s *Store) Stats() (*domain.StorageStats, error) {
	stats := &domain.StorageStats{}

	areas := []struct {
		dir  string
		area *domain.AreaStats
	}{
		{s.tempDir, &stats.Temp},
		{s.processedDir, &stats.Processed},
		{s.audioDir, &stats.Audio},
	}

	for _, a := range areas {
		entries, err := os.ReadDir(a.dir)
		if err != nil {
			return nil, fmt.Errorf("%w: read dir %s: %w", domain.ErrStorage, a.dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			a.area.Count++
			a.area.Bytes += info.Size()
		}
		stats.Total.Count += a.area.Count
		stats.Total.Bytes += a.area.Bytes
	}

	return stats, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
