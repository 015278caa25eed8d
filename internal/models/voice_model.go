package models

import (
	"time"
)

// VoiceModel status values. Creating is the only valid initial state and
// transitions are one-way: creating -> ready or creating -> failed.
const (
	StatusCreating = "creating"
	StatusReady    = "ready"
	StatusFailed   = "failed"
)

// VoiceModel represents a cloned voice tracked locally. RemoteModelID is
// empty until the remote provider accepts the clone; Status == ready
// implies RemoteModelID is set.
type VoiceModel struct {
	ID              string    `gorm:"primarykey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	RemoteModelID   string    `gorm:"index" json:"remote_model_id"`
	Status          string    `gorm:"not null;default:creating" json:"status"`
	SourceAudioPath string    `json:"source_audio_path"`
	AudioDuration   int       `json:"audio_duration"`
	AudioSize       int64     `json:"audio_size"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// History rows are owned by the model and removed with it
	History []SynthesisRecord `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for VoiceModel
func (VoiceModel) TableName() string {
	return "models"
}

// IsTerminal reports whether the model has reached a status with no
// further automatic transition.
func (m *VoiceModel) IsTerminal() bool {
	return m.Status == StatusReady || m.Status == StatusFailed
}
