package domain

import "fmt"

// TempFile is a handle to an ephemeral upload in the temp area
type TempFile struct {
	ID   string
	Name string
	Path string
	Size int64
}

// AudioFile is a handle to a durable file in the audio area
type AudioFile struct {
	Name     string
	Path     string
	URL      string
	MimeType string
	Size     int64
}

// AreaStats holds aggregate counts for one storage area
type AreaStats struct {
	Count int   `json:"count"`
	Bytes int64 `json:"bytes"`
}

// StorageStats holds aggregate counts for every storage area
type StorageStats struct {
	Temp      AreaStats `json:"temp"`
	Processed AreaStats `json:"processed"`
	Audio     AreaStats `json:"audio"`
	Total     AreaStats `json:"total"`
}

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count in base-1024 units rounded to two decimals
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d Bytes", n)
	}
	return fmt.Sprintf("%.2f %s", value, byteUnits[unit])
}
