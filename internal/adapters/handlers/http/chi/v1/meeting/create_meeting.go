package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// CreateMeetingV1 creates a meeting and attaches its recording in one request.
// Expects a multipart form with title/description/category fields and the file
// in the "audio" field; on success the meeting is already in the processing
// pipeline and is returned with status 201.
func (h *HandlerV1) CreateMeetingV1(w http.ResponseWriter, r *http.Request) {

	owner, err := ownerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
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

	title := r.FormValue("title")
	description := r.FormValue("description")
	category := domain.MeetingCategory(r.FormValue("category"))

	m, createErr := h.meetingService.Create(r.Context(), owner, title, description, category)
	switch {
	case errors.Is(createErr, domain.ErrValidation):
		http.Error(w, createErr.Error(), http.StatusBadRequest)
		return
	case createErr != nil:
		h.logger.Error("error creating meeting", "error", createErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	contentType := header.Header.Get("Content-Type")

	attached, attachErr := h.meetingService.AttachAudio(r.Context(), m.ID, file, header.Filename, contentType, header.Size)
	switch {
	case errors.Is(attachErr, domain.ErrUnsupportedMedia):
		// the record is useless without its audio, discard it
		h.discardMeeting(r.Context(), m.ID)
		http.Error(w, attachErr.Error(), http.StatusBadRequest)
		return
	case attachErr != nil:
		// record stays in uploading, the client can retry the audio upload
		h.logger.Error("error attaching audio", "meeting_id", m.ID, "error", attachErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toMeetingResponse(*attached)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

func (h *HandlerV1) discardMeeting(ctx context.Context, id uuid.UUID) {
	if err := h.meetingService.Delete(ctx, id); err != nil {
		h.logger.Error("error discarding meeting after rejected upload", "meeting_id", id, "error", err)
	}
}
