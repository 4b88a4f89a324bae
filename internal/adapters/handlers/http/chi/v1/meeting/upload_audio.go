package meeting

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// uploads above this stay on disk during multipart parsing
const multipartMemoryLimit = 8 << 20

// UploadAudioV1 attaches the recording to a meeting. Expects a multipart form
// with the file in the "audio" field; on success the meeting has entered the
// processing pipeline and is returned with status 202.
func (h *HandlerV1) UploadAudioV1(w http.ResponseWriter, r *http.Request) {

	id, err := meetingIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "audio file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	m, attachErr := h.meetingService.AttachAudio(r.Context(), id, file, header.Filename, contentType, header.Size)
	switch {
	case errors.Is(attachErr, domain.ErrUnsupportedMedia):
		http.Error(w, attachErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(attachErr, domain.ErrMeetingNotFound):
		http.Error(w, "meeting not found", http.StatusNotFound)
		return
	case errors.Is(attachErr, domain.ErrIllegalTransition):
		http.Error(w, attachErr.Error(), http.StatusConflict)
		return
	case attachErr != nil:
		h.logger.Error("error attaching audio", "meeting_id", id, "error", attachErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(toMeetingResponse(*m)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
