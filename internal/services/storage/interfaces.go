package storage

import (
	"context"
	"io"
)

// Backend abstracts blob storage for uploaded samples and generated audio.
// The filesystem implementation is the only one today; a cloud-bucket
// implementation would satisfy the same interface.
type Backend interface {
	// Save stores data under filename and returns the full storage path
	Save(ctx context.Context, data io.Reader, filename string) (string, error)

	// Open returns a reader for a previously saved path
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored blob; deleting a missing blob is not an error
	Delete(ctx context.Context, path string) error

	// Exists reports whether a stored blob is present
	Exists(ctx context.Context, path string) (bool, error)
}
