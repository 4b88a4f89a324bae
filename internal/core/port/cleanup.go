package port

import (
	"context"
	"time"
)

// CleanupService is service that handles the periodic storage sweep
type CleanupService interface {
	Sweep(ctx context.Context, now time.Time) error
}
