package meeting

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// GetMeetingV1 returns a single meeting with its current processing state
func (h *HandlerV1) GetMeetingV1(w http.ResponseWriter, r *http.Request) {

	id, err := meetingIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, getErr := h.meetingService.Get(r.Context(), id)
	switch {
	case errors.Is(getErr, domain.ErrMeetingNotFound):
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	case getErr != nil:
		h.logger.Error("error getting meeting", "meeting_id", id, "error", getErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(toMeetingResponse(*m)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// V1ListMeetingsResponse is the response to list meetings
type V1ListMeetingsResponse struct {
	Meetings []V1MeetingResponse `json:"meetings"`
}

// ListMeetingsV1 lists the calling user's meetings, newest first
func (h *HandlerV1) ListMeetingsV1(w http.ResponseWriter, r *http.Request) {

	owner, err := ownerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	meetings, listErr := h.meetingService.ListByOwner(r.Context(), owner)
	if listErr != nil {
		h.logger.Error("error listing meetings", "owner_id", owner, "error", listErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	resp := V1ListMeetingsResponse{Meetings: make([]V1MeetingResponse, 0, len(meetings))}
	for _, m := range meetings {
		resp.Meetings = append(resp.Meetings, toMeetingResponse(m))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
