package meeting

import (
	"errors"
	"net/http"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// DeleteMeetingV1 removes a meeting and its stored files
func (h *HandlerV1) DeleteMeetingV1(w http.ResponseWriter, r *http.Request) {

	id, err := meetingIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleteErr := h.meetingService.Delete(r.Context(), id)
	switch {
	case errors.Is(deleteErr, domain.ErrMeetingNotFound):
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	case deleteErr != nil:
		h.logger.Error("error deleting meeting", "meeting_id", id, "error", deleteErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
