package models

import (
	"math"
	"time"
)

// JobState is the lifecycle state of a backend processing job.
type JobState string

const (
	JobPending    JobState = "pending"
	JobProcessing JobState = "processing"
	JobCompleted  JobState = "completed"
	JobFailed     JobState = "failed"
)

// IsTerminal reports whether no further transitions can follow s.
func (s JobState) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

func (s JobState) Valid() bool {
	switch s {
	case JobPending, JobProcessing, JobCompleted, JobFailed:
		return true
	default:
		return false
	}
}

// Job is a read-only status snapshot returned by the backend.
type Job struct {
	ID          string   `json:"job_id"`
	Status      JobState `json:"status"`
	Progress    float64  `json:"progress"`
	Message     string   `json:"message"`
	OutputFiles []string `json:"output_files"`
	Error       string   `json:"error,omitempty"`
}

func (j Job) IsTerminal() bool { return j.Status.IsTerminal() }

// Percent returns the progress rounded down and clamped to [0,100].
func (j Job) Percent() int {
	switch {
	case math.IsNaN(j.Progress) || j.Progress <= 0:
		return 0
	case j.Progress >= 100:
		return 100
	default:
		return int(j.Progress)
	}
}

// BatchJob is the response of a batch submission.
type BatchJob struct {
	ID        string `json:"job_id"`
	TotalJobs int    `json:"total_jobs"`
	Message   string `json:"message"`
}

// JobKind records how a tracked job was submitted.
type JobKind string

const (
	JobKindBatch  JobKind = "batch"
	JobKindSingle JobKind = "single"
)

// TrackedJob is a job submitted from this client together with its latest
// known snapshot.
type TrackedJob struct {
	Job
	Kind      JobKind
	TotalJobs int
	CreatedAt time.Time
	UpdatedAt time.Time
}
