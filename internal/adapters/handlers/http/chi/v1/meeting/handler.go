package meeting

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandlerV1 is the handler for v1 meeting routes
type HandlerV1 struct {
	meetingService port.MeetingService
	logger         *slog.Logger
}

// NewMeetingHandlerV1 creates HandlerV1
func NewMeetingHandlerV1(service port.MeetingService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		meetingService: service,
		logger:         logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateMeetingV1)
	router.Get("/", h.ListMeetingsV1)
	router.Get("/{meetingID}", h.GetMeetingV1)
	router.Delete("/{meetingID}", h.DeleteMeetingV1)
	router.Post("/{meetingID}/audio", h.UploadAudioV1)
	router.Get("/{meetingID}/audio", h.StreamAudioV1)

	return router
}

// V1MeetingResponse is the wire shape of a meeting
type V1MeetingResponse struct {
	ID            uuid.UUID              `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description,omitempty"`
	Category      domain.MeetingCategory `json:"category"`
	Status        domain.MeetingStatus   `json:"status"`
	AudioURL      string                 `json:"audio_url,omitempty"`
	AudioSize     int64                  `json:"audio_size,omitempty"`
	Duration      float64                `json:"duration,omitempty"`
	Transcript    string                 `json:"transcript,omitempty"`
	Summary       *domain.MeetingSummary `json:"summary,omitempty"`
	FailureReason string                 `json:"failure_reason,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func toMeetingResponse(m domain.Meeting) V1MeetingResponse {
	return V1MeetingResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Status:        m.Status,
		AudioURL:      m.AudioURL,
		AudioSize:     m.AudioSize,
		Duration:      m.Duration,
		Transcript:    m.Transcript,
		Summary:       m.Summary,
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ownerID extracts the calling user from the X-User-ID header. Authentication
// itself lives at the gateway; the API trusts the forwarded identity.
func ownerID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing X-User-ID header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid X-User-ID header: %w", err)
	}
	return id, nil
}

func meetingIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "meetingID")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("meeting id is required")
	}
	return uuid.Parse(raw)
}
