package minio

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/haris936hk/EchoNote-sub002/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter copies durable audio files into an object-storage bucket for
// long-term retention. It is optional; when archival is disabled the pipeline
// runs without it.
type Adapter struct {
	client *minio.Client
	config config.ArchiveConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter, creating the bucket when it does not exist yet.
func NewAdapter(ctx context.Context, cfg config.ArchiveConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Archive uploads the audio file at path under a key derived from the meeting
// id. Re-archiving the same meeting overwrites the previous object.
func (a *Adapter) Archive(ctx context.Context, meetingID uuid.UUID, path string) error {
	key := meetingID.String() + filepath.Ext(path)

	info, err := a.client.FPutObject(ctx, a.config.BucketName, key, path, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to archive audio: %w", err)
	}

	a.logger.Info("audio archived",
		slog.String("meeting_id", meetingID.String()),
		slog.String("key", key),
		slog.Int64("size", info.Size))

	return nil
}
