package voiceclone

import (
	"context"
	"time"
)

// RemoteModel is a voice model as reported by the remote provider
type RemoteModel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// Client is the boundary to the remote voice cloning provider. Every
// operation enforces its own deadline and returns classified errors
// (pkg/errors remote codes); callers never retry automatically.
type Client interface {
	// CreateModel clones a voice from raw audio and returns the remote model id
	CreateModel(ctx context.Context, title, description string, audio []byte) (string, error)

	// Synthesize generates speech in the given format against a remote model
	Synthesize(ctx context.Context, text, remoteModelID, format string) ([]byte, error)

	// ListModels returns every model the provider holds for this account
	ListModels(ctx context.Context) ([]RemoteModel, error)

	// DeleteModel removes a model from the provider
	DeleteModel(ctx context.Context, remoteModelID string) error
}
