package cleanup

import (
	"context"
	"errors"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// Sweep purges stale temp files, empties the processed area, reclaims audio
// files whose meeting row is gone, and logs the resulting storage stats.
// A failure in one step is logged and does not abort the others.
func (c *cleanupService) Sweep(ctx context.Context, now time.Time) error {
	var errs []error

	tempDeleted, err := c.blobs.PurgeTemp(c.tempMaxAge)
	if err != nil {
		c.logger.Error("failed to purge temp area", "error", err)
		errs = append(errs, err)
	}

	processedDeleted, err := c.blobs.PurgeProcessed()
	if err != nil {
		c.logger.Error("failed to purge processed area", "error", err)
		errs = append(errs, err)
	}

	orphansDeleted, err := c.reclaimOrphanedAudio(ctx)
	if err != nil {
		c.logger.Error("failed to reclaim orphaned audio", "error", err)
		errs = append(errs, err)
	}

	stats, err := c.blobs.Stats()
	if err != nil {
		c.logger.Error("failed to compute storage stats", "error", err)
		errs = append(errs, err)
	} else {
		c.logger.Info("storage sweep completed",
			"temp_deleted", tempDeleted,
			"processed_deleted", processedDeleted,
			"orphans_deleted", orphansDeleted,
			"total_files", stats.Total.Count,
			"total_size", domain.FormatBytes(stats.Total.Bytes),
		)
	}

	return errors.Join(errs...)
}

// reclaimOrphanedAudio deletes durable files whose meeting record no longer
// exists, compensating for a delete where the file removal failed.
func (c *cleanupService) reclaimOrphanedAudio(ctx context.Context) (int, error) {
	ids, err := c.blobs.ListAudioIDs()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.logger.Warn("audio file with non-uuid name, skipping", "name", raw)
			continue
		}

		exists, err := c.repo.Exists(ctx, id)
		if err != nil {
			return deleted, err
		}
		if exists {
			continue
		}

		if err := c.blobs.DeleteAudio(id); err != nil {
			c.logger.Error("failed to delete orphaned audio", "meeting_id", id, "error", err)
			continue
		}
		deleted++
	}

	return deleted, nil
}
