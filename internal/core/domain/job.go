package domain

import "time"

type JobStatus string

const (
	JobStatusReceived   JobStatus = "received"
	JobStatusProcessing JobStatus = "processing"
	JobStatusReady      JobStatus = "ready"
	JobStatusFailed     JobStatus = "failed"
)

// UploadJob tracks one upload and the deferred recompute it triggered.
// Clients poll it to observe completion or failure of the background pass.
type UploadJob struct {
	ID          string    `json:"id"`
	Dataset     Dataset   `json:"dataset"`
	RecordCount int       `json:"record_count"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecomputeRequest is the queue message dispatching derived-state refresh
// to the analytics worker.
type RecomputeRequest struct {
	JobID   string  `json:"job_id"`
	Dataset Dataset `json:"dataset"`
}
