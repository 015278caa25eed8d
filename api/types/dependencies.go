package types

import (
	"github.com/vocalforge/voice-api/internal/database"
	"github.com/vocalforge/voice-api/internal/services/reconcile"
	"github.com/vocalforge/voice-api/internal/services/storage"
	"github.com/vocalforge/voice-api/internal/services/synthesis"
	"github.com/vocalforge/voice-api/internal/services/voiceclone"
	"github.com/vocalforge/voice-api/internal/services/voicemodels"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB               *database.DB
	VoiceClient      voiceclone.Client
	ModelService     voicemodels.Service
	SynthesisService synthesis.Service
	ReconcileService reconcile.Service
	AudioStore       storage.Backend
	UploadStore      storage.Backend
	MaxUploadBytes   int64
}
