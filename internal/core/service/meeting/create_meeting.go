package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// Create persists a new meeting in the uploading state. The record exists
// before any file-system or processing work so a crash leaves a discoverable
// record rather than a silently dropped upload.
func (s *meetingService) Create(ctx context.Context, ownerID uuid.UUID, title, description string, category domain.MeetingCategory) (*domain.Meeting, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}

	if category == "" {
		category = domain.MeetingCategoryOther
	}
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	now := time.Now().UTC()
	m := domain.Meeting{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.MeetingStatusUploading,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("could not create meeting: %w", err)
	}

	return &m, nil
}
