package meeting

import (
	"errors"
	"net/http"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// StreamAudioV1 serves the durable audio file for a completed meeting.
// ServeFile handles range requests so clients can seek.
func (h *HandlerV1) StreamAudioV1(w http.ResponseWriter, r *http.Request) {

	id, err := meetingIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	af, openErr := h.meetingService.OpenAudio(r.Context(), id)
	switch {
	case errors.Is(openErr, domain.ErrMeetingNotFound), errors.Is(openErr, domain.ErrAudioNotFound):
		http.Error(w, "audio not found", http.StatusNotFound)
		return
	case openErr != nil:
		h.logger.Error("error opening audio", "meeting_id", id, "error", openErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		if af.MimeType != "" {
			w.Header().Set("Content-Type", af.MimeType)
		}
		http.ServeFile(w, r, af.Path)
		return
	}
}
