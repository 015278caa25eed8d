// Package audiometa estimates audio duration from file size and format.
// The estimates use typical bitrates per container, not actual decoding,
// so callers must treat results as informational only.
package audiometa

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Metadata holds best-effort audio file metadata
type Metadata struct {
	DurationSeconds int   `json:"duration_seconds"`
	SizeBytes       int64 `json:"size_bytes"`
}

// bitrateFor returns the assumed bitrate in bits per second for a file extension
func bitrateFor(ext string) int64 {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "wav":
		// CD quality: 44.1kHz * 16bit * 2 channels
		return 1411 * 1000
	case "flac":
		return 900 * 1000
	case "m4a", "aac":
		return 128 * 1000
	case "ogg", "webm", "opus":
		return 128 * 1000
	case "mp3", "mpeg":
		return 128 * 1000
	default:
		return 128 * 1000
	}
}

// Estimate stats a file and derives duration from its size and extension.
func Estimate(path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat audio file: %w", err)
	}
	return EstimateBytes(info.Size(), filepath.Ext(path)), nil
}

// EstimateBytes derives duration from a byte count and extension without
// touching the filesystem. Used for pass-through uploads that are never
// written locally.
func EstimateBytes(size int64, ext string) Metadata {
	if size <= 0 {
		return Metadata{}
	}
	bitrate := bitrateFor(ext)
	return Metadata{
		DurationSeconds: int(size * 8 / bitrate),
		SizeBytes:       size,
	}
}

// FormatSize renders a byte count for display
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}

// FormatDuration renders a second count for display
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		if seconds%60 == 0 {
			return fmt.Sprintf("%dm", seconds/60)
		}
		return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh%dm", seconds/3600, (seconds%3600)/60)
}
