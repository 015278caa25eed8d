package reconcile

import (
	"context"

	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/voiceclone"
)

// OrphanedLocal is a local voice model whose remote counterpart is gone,
// either deleted out-of-band or lost to a failed best-effort remote delete
type OrphanedLocal struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	RemoteModelID string `json:"remote_model_id"`
	Status        string `json:"status"`
}

// Report is a point-in-time consistency view of local metadata against
// the remote provider's model list
type Report struct {
	LocalCount     int                      `json:"local_count"`
	RemoteCount    int                      `json:"remote_count"`
	OrphanedLocal  []OrphanedLocal          `json:"orphaned_local"`
	OrphanedRemote []voiceclone.RemoteModel `json:"orphaned_remote"`
}

// ModelLister provides the local voice model rows to reconcile against
type ModelLister interface {
	ListModels(ctx context.Context) ([]models.VoiceModel, error)
}

// Service defines the interface for local/remote consistency analysis
type Service interface {
	Analyze(ctx context.Context) (*Report, error)
}

// ServiceImpl implements the Service interface. It is strictly
// diagnostic: it reads both sides and mutates neither.
type ServiceImpl struct {
	local       ModelLister
	voiceClient voiceclone.Client
}

// NewService creates a new reconciliation service
func NewService(local ModelLister, voiceClient voiceclone.Client) Service {
	return &ServiceImpl{
		local:       local,
		voiceClient: voiceClient,
	}
}

// Analyze compares local rows with the remote listing and reports orphans
// on both sides. Matching is exact string equality on the remote model id.
func (s *ServiceImpl) Analyze(ctx context.Context) (*Report, error) {
	localModels, err := s.local.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	remoteModels, err := s.voiceClient.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	remoteByID := make(map[string]struct{}, len(remoteModels))
	for _, remote := range remoteModels {
		remoteByID[remote.ID] = struct{}{}
	}

	localRemoteIDs := make(map[string]struct{}, len(localModels))
	report := &Report{
		LocalCount:     len(localModels),
		RemoteCount:    len(remoteModels),
		OrphanedLocal:  []OrphanedLocal{},
		OrphanedRemote: []voiceclone.RemoteModel{},
	}

	for _, local := range localModels {
		if local.RemoteModelID == "" {
			// Rows still creating or failed never had a remote counterpart
			continue
		}
		localRemoteIDs[local.RemoteModelID] = struct{}{}
		if _, ok := remoteByID[local.RemoteModelID]; !ok {
			report.OrphanedLocal = append(report.OrphanedLocal, OrphanedLocal{
				ID:            local.ID,
				Title:         local.Title,
				RemoteModelID: local.RemoteModelID,
				Status:        local.Status,
			})
		}
	}

	for _, remote := range remoteModels {
		if _, ok := localRemoteIDs[remote.ID]; !ok {
			report.OrphanedRemote = append(report.OrphanedRemote, remote)
		}
	}

	return report, nil
}
