package domain

import "time"

type JobID string

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusPaused, JobStatusClosed:
		return true
	default:
		return false
	}
}

type Job struct {
	ID             JobID
	Title          string
	Description    string
	Requirements   string
	Skills         []string
	Location       string
	SalaryRange    string
	JobType        string
	Status         JobStatus
	CandidateCount int
	CreatedAt      time.Time
}

// JobDraft carries the fields the server accepts when creating a posting.
// Identity, status, and counters are server-assigned.
type JobDraft struct {
	Title        string
	Description  string
	Requirements string
	Skills       []string
	Location     string
	SalaryRange  string
	JobType      string
}

// JobPatch is a partial update. Nil fields are left untouched by the server.
type JobPatch struct {
	Title        *string
	Description  *string
	Requirements *string
	Skills       []string
	Location     *string
	SalaryRange  *string
	JobType      *string
	Status       *JobStatus
}
