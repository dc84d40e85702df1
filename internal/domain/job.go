package domain

import "time"

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusReady      JobStatus = "ready"
	JobStatusError      JobStatus = "error"
)

// Terminal reports whether no further transition is allowed.
func (s JobStatus) Terminal() bool {
	return s == JobStatusReady || s == JobStatusError
}

// Job tracks one ad generation from submission to a terminal result.
// A processing job carries neither Result nor Error; a ready job carries a
// full Result; a failed job carries only Error.
type Job struct {
	ID        string
	Status    JobStatus
	Request   AdRequest
	Result    *AdResult
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJob returns a processing job for the given request.
func NewJob(id string, req AdRequest, now time.Time) *Job {
	return &Job{
		ID:        id,
		Status:    JobStatusProcessing,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkReady moves the job to ready with the given result.
func (j *Job) MarkReady(result AdResult, now time.Time) {
	j.Status = JobStatusReady
	j.Result = &result
	j.Error = ""
	j.UpdatedAt = now
}

// MarkFailed moves the job to error with the given message.
func (j *Job) MarkFailed(msg string, now time.Time) {
	j.Status = JobStatusError
	j.Result = nil
	j.Error = msg
	j.UpdatedAt = now
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	out := *j
	if j.Result != nil {
		res := *j.Result
		out.Result = &res
	}
	return &out
}
