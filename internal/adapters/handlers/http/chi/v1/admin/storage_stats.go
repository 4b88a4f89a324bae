package admin

import (
	"encoding/json"
	"net/http"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
)

// V1AreaStats reports one storage area with a human readable size
type V1AreaStats struct {
	Count     int    `json:"count"`
	Bytes     int64  `json:"bytes"`
	Formatted string `json:"formatted"`
}

// V1StorageStatsResponse is the response to the storage stats query
type V1StorageStatsResponse struct {
	Temp      V1AreaStats `json:"temp"`
	Processed V1AreaStats `json:"processed"`
	Audio     V1AreaStats `json:"audio"`
	Total     V1AreaStats `json:"total"`
}

func toAreaStats(s domain.AreaStats) V1AreaStats {
	return V1AreaStats{
		Count:     s.Count,
		Bytes:     s.Bytes,
		Formatted: domain.FormatBytes(s.Bytes),
	}
}

// StorageStatsV1 reports per-area file counts and byte totals
func (h *HandlerV1) StorageStatsV1(w http.ResponseWriter, r *http.Request) {

	stats, err := h.blobs.Stats()
	if err != nil {
		h.logger.Error("error collecting storage stats", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	resp := V1StorageStatsResponse{
		Temp:      toAreaStats(stats.Temp),
		Processed: toAreaStats(stats.Processed),
		Audio:     toAreaStats(stats.Audio),
		Total:     toAreaStats(stats.Total),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
