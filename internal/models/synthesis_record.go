package models

import (
	"time"
)

// Supported synthesis output formats
const (
	FormatMP3  = "mp3"
	FormatWAV  = "wav"
	FormatOpus = "opus"
)

// ValidFormat reports whether format is a supported synthesis output format
func ValidFormat(format string) bool {
	switch format {
	case FormatMP3, FormatWAV, FormatOpus:
		return true
	}
	return false
}

// SynthesisRecord is one text-to-speech generation against a voice model.
// Rows are immutable after insert and cascade-deleted with their model.
type SynthesisRecord struct {
	ID          string    `gorm:"primarykey" json:"id"`
	ModelID     string    `gorm:"not null;index" json:"model_id"`
	Text        string    `gorm:"not null;type:text" json:"text"`
	AudioPath   string    `gorm:"not null" json:"audio_path"`
	AudioFormat string    `gorm:"not null;default:mp3" json:"audio_format"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for SynthesisRecord
func (SynthesisRecord) TableName() string {
	return "tts_history"
}
