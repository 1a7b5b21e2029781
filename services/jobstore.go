package services

import (
	"errors"
	"sync"
	"time"

	"ytconv/types"
	"ytconv/websocket"

	"github.com/google/uuid"
)

// ErrJobNotFound reports a lookup for an id the registry never issued.
var ErrJobNotFound = errors.New("job not found")

// JobStore interface defines the methods for tracking conversion jobs
type JobStore interface {
	Create(format types.Format) types.Job
	Get(id string) (types.Job, bool)
	SetTitle(id, title string)
	SetProcessing(id string, progress int, message string)
	SetProgress(id string, progress int, message string)
	Complete(id, outputPath string)
	Fail(id, errMsg string)
}

// jobStore is an in-memory registry of conversion jobs. Entries live for the
// process lifetime; the retention sweeper reclaims files independently of
// job bookkeeping.
type jobStore struct {
	jobs map[string]*types.Job
	mu   sync.RWMutex
	hub  websocket.Hub
}

// NewJobStore creates a new job store. The hub may be nil when no WebSocket
// progress updates are wanted.
func NewJobStore(hub websocket.Hub) JobStore {
	return &jobStore{
		jobs: make(map[string]*types.Job),
		hub:  hub,
	}
}

// Create registers a new pending job and returns a snapshot of it.
func (s *jobStore) Create(format types.Format) types.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &types.Job{
		ID:        uuid.New().String(),
		Status:    types.JobStatusPending,
		Progress:  0,
		Message:   "Job created",
		Format:    string(format),
		CreatedAt: time.Now(),
	}
	s.jobs[job.ID] = job

	return *job
}

// Get returns a copy of the job, so pollers never observe a half-applied
// update.
func (s *jobStore) Get(id string) (types.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return types.Job{}, false
	}
	return *job, true
}

// mutate applies fn to the job under the write lock. Unknown ids and jobs in
// a terminal state are left untouched, so a completed or failed job can
// never regress.
func (s *jobStore) mutate(id string, fn func(*types.Job)) (types.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists || job.Status.Terminal() {
		return types.Job{}, false
	}
	fn(job)
	return *job, true
}

// SetTitle records the resolved media title on the job.
func (s *jobStore) SetTitle(id, title string) {
	s.mutate(id, func(j *types.Job) {
		j.Title = title
	})
}

// SetProcessing moves a job into the processing state.
func (s *jobStore) SetProcessing(id string, progress int, message string) {
	job, ok := s.mutate(id, func(j *types.Job) {
		j.Status = types.JobStatusProcessing
		j.Progress = progress
		j.Message = message
	})
	if ok {
		s.broadcast(job, "status")
	}
}

// SetProgress updates progress and the current-step message.
func (s *jobStore) SetProgress(id string, progress int, message string) {
	job, ok := s.mutate(id, func(j *types.Job) {
		j.Progress = progress
		j.Message = message
	})
	if ok {
		s.broadcast(job, "progress")
	}
}

// Complete marks a job finished and records where the artifact landed.
func (s *jobStore) Complete(id, outputPath string) {
	job, ok := s.mutate(id, func(j *types.Job) {
		j.Status = types.JobStatusCompleted
		j.Progress = 100
		j.Message = "Conversion complete!"
		j.OutputPath = outputPath
	})
	if ok {
		s.broadcast(job, "complete")
	}
}

// Fail marks a job failed with the given reason. Error and output path are
// mutually exclusive, so any previously recorded path is cleared.
func (s *jobStore) Fail(id, errMsg string) {
	job, ok := s.mutate(id, func(j *types.Job) {
		j.Status = types.JobStatusFailed
		j.Error = errMsg
		j.OutputPath = ""
	})
	if ok {
		s.broadcast(job, "error")
	}
}

func (s *jobStore) broadcast(job types.Job, msgType string) {
	if s.hub == nil {
		return
	}

	message := job.Message
	if msgType == "error" {
		message = job.Error
	}
	s.hub.BroadcastProgress(job.ID, msgType, string(job.Status), message, job.Progress)
}
