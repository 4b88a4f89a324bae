package admin

import (
	"encoding/json"
	"net/http"
	"time"
)

// V1RunCleanupResponse is the response to a manual cleanup run
type V1RunCleanupResponse struct {
	Status string    `json:"status"`
	RanAt  time.Time `json:"ran_at"`
}

// RunCleanupV1 triggers a storage sweep outside the regular schedule
func (h *HandlerV1) RunCleanupV1(w http.ResponseWriter, r *http.Request) {

	now := time.Now()
	if err := h.cleaner.Sweep(r.Context(), now); err != nil {
		h.logger.Error("manual cleanup failed", "error", err)
		http.Error(w, "cleanup failed", http.StatusServiceUnavailable)
		return
	}

	resp := V1RunCleanupResponse{Status: "ok", RanAt: now}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
