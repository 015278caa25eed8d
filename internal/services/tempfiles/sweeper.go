package tempfiles

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Sweeper periodically removes stale temp files. It backstops the
// scoped-release contract of Manager against process crashes that leave
// files behind.
type Sweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	cancel   context.CancelFunc
}

// NewSweeper creates a sweeper for dir removing files older than maxAge
func NewSweeper(dir string, maxAge, interval time.Duration) *Sweeper {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Sweeper{dir: dir, maxAge: maxAge, interval: interval}
}

// Start begins periodic sweeping until ctx is cancelled or Stop is called
func (s *Sweeper) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.sweep()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				log.Println("[INFO] Temp file sweeper stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Temp file sweeper started (interval: %v, max age: %v)", s.interval, s.maxAge)
}

// Stop stops the sweeper
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep removes files in dir older than maxAge
func (s *Sweeper) sweep() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to read temp directory %s: %v", s.dir, err)
		}
		return
	}

	cutoff := time.Now().Add(-s.maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("[WARN] Failed to remove stale temp file %s: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[INFO] Removed %d stale temp file(s)", removed)
	}
}
