package types

import "time"

// JobStatus represents the current status of a conversion job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether a job in this status can no longer change state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job represents a conversion job and its observable state. Each job is
// written by exactly one worker and read by arbitrarily many status pollers.
type Job struct {
	ID         string    `json:"job_id"`
	Status     JobStatus `json:"status"`
	Progress   int       `json:"progress"` // 0-100
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
	OutputPath string    `json:"file_path,omitempty"`
	Title      string    `json:"video_title,omitempty"`
	Format     string    `json:"format,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
