package services

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// RetentionSweeper periodically deletes aged files from the output
// directory. It is unaware of job bookkeeping: every file old enough is
// eligible, including completed-but-undownloaded artifacts.
type RetentionSweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
}

// NewRetentionSweeper creates a sweeper over dir removing files older than
// retention, checking every interval.
func NewRetentionSweeper(dir string, retention, interval time.Duration) *RetentionSweeper {
	return &RetentionSweeper{
		dir:       dir,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start runs the sweep loop on its own goroutine until Stop is called.
func (s *RetentionSweeper) Start() {
	log.Printf("File cleanup started (retention: %s, interval: %s)", s.retention, s.interval)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			s.Sweep()
			select {
			case <-ticker.C:
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop.
func (s *RetentionSweeper) Stop() {
	close(s.stop)
	log.Printf("File cleanup stopped")
}

// Sweep removes files older than the retention age and returns how many
// were deleted.
func (s *RetentionSweeper) Sweep() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading output directory %s: %v", s.dir, err)
		}
		return 0
	}

	cutoff := time.Now().Add(-s.retention)
	deleted := 0

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

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			log.Printf("Error deleting file %s: %v", entry.Name(), err)
			continue
		}
		deleted++
		log.Printf("Deleted old file: %s", entry.Name())
	}

	if deleted > 0 {
		log.Printf("Cleanup complete: %d file(s) deleted", deleted)
	}
	return deleted
}
