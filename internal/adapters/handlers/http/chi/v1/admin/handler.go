package admin

import (
	"log/slog"

	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 admin routes
type HandlerV1 struct {
	blobs   port.BlobStore
	cleaner port.CleanupService
	logger  *slog.Logger
}

// NewAdminHandlerV1 creates HandlerV1
func NewAdminHandlerV1(blobs port.BlobStore, cleaner port.CleanupService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		blobs:   blobs,
		cleaner: cleaner,
		logger:  logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/storage/stats", h.StorageStatsV1)
	router.Post("/cleanup", h.RunCleanupV1)

	return router
}
