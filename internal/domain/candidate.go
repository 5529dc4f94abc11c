package domain

import "time"

type CandidateID string

type CandidateStatus string

const (
	CandidateStatusNew         CandidateStatus = "new"
	CandidateStatusReviewing   CandidateStatus = "reviewing"
	CandidateStatusShortlisted CandidateStatus = "shortlisted"
	CandidateStatusRejected    CandidateStatus = "rejected"
	CandidateStatusHired       CandidateStatus = "hired"
)

// ReviewOrder is the pipeline display order, from intake to outcome.
var ReviewOrder = []CandidateStatus{
	CandidateStatusNew,
	CandidateStatusReviewing,
	CandidateStatusShortlisted,
	CandidateStatusHired,
	CandidateStatusRejected,
}

func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateStatusNew, CandidateStatusReviewing, CandidateStatusShortlisted,
		CandidateStatusRejected, CandidateStatusHired:
		return true
	default:
		return false
	}
}

func (s CandidateStatus) Terminal() bool {
	return s == CandidateStatusRejected || s == CandidateStatusHired
}

// Next returns the usual forward moves from a status. The server remains the
// authority on which transitions it accepts; this only drives display hints.
func (s CandidateStatus) Next() []CandidateStatus {
	switch s {
	case CandidateStatusNew:
		return []CandidateStatus{CandidateStatusReviewing}
	case CandidateStatusReviewing:
		return []CandidateStatus{CandidateStatusShortlisted, CandidateStatusRejected}
	case CandidateStatusShortlisted:
		return []CandidateStatus{CandidateStatusHired}
	default:
		return nil
	}
}

type Candidate struct {
	ID              CandidateID
	JobID           JobID
	Name            string
	Email           string
	Phone           string
	ResumeURL       string
	Status          CandidateStatus
	AIScore         int
	AISummary       string
	SkillsMatched   []string
	ExperienceYears int
	CreatedAt       time.Time
}

// Analyzed reports whether the analysis engine has returned a result for this
// candidate. Until then the score is a placeholder and must not be ranked on.
func (c Candidate) Analyzed() bool {
	return c.AIScore > 0 || c.AISummary != ""
}

// Analysis is the structured result the analysis engine produces for one
// resume against one job posting.
type Analysis struct {
	Score           int
	Summary         string
	SkillsMatched   []string
	ExperienceYears int
	Strengths       []string
	Concerns        []string
}

// ResumeSubmission is the multipart payload for creating a candidate.
type ResumeSubmission struct {
	Name     string
	Email    string
	Phone    string
	FileName string
	File     []byte
}

// CandidateFilter narrows and orders a job's candidate listing.
type CandidateFilter struct {
	Status CandidateStatus
	SortBy string
}
