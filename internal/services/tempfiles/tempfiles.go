package tempfiles

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Manager stages byte payloads as uniquely named files in a scratch
// directory and guarantees their removal.
type Manager struct {
	dir string
}

// NewManager creates a temp file manager rooted at dir
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// WithTemporaryFile writes data to a fresh temp file, invokes fn with its
// path, and removes the file on every exit path, including a panic inside
// fn. Removal failures are logged, never returned: the file result must
// not mask fn's outcome.
func (m *Manager) WithTemporaryFile(data []byte, ext string, fn func(path string) error) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	path := filepath.Join(m.dir, uuid.New().String()+ext)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to remove temp file %s: %v", path, err)
		}
	}()

	return fn(path)
}

// Dir returns the scratch directory
func (m *Manager) Dir() string {
	return m.dir
}
