package ports

import (
	"context"

	"github.com/veldtec/talentctl/internal/domain"
)

// Gateway is the single chokepoint for all calls against the hiring platform
// API. Implementations attach the current bearer token, collapse transport
// and HTTP failures into *domain.RequestError, and clear the session on 401.
type Gateway interface {
	Register(ctx context.Context, reg domain.Registration) (domain.Session, error)
	// Login returns only the access token; the canonical flow confirms it
	// with Me before the session is committed.
	Login(ctx context.Context, email, password string) (string, error)
	// Me takes the token explicitly so a not-yet-committed token can be
	// confirmed without touching the session store.
	Me(ctx context.Context, token string) (domain.User, error)

	ListJobs(ctx context.Context, status domain.JobStatus) ([]domain.Job, error)
	GetJob(ctx context.Context, id domain.JobID) (domain.Job, error)
	CreateJob(ctx context.Context, draft domain.JobDraft) (domain.Job, error)
	UpdateJob(ctx context.Context, id domain.JobID, patch domain.JobPatch) (domain.Job, error)
	DeleteJob(ctx context.Context, id domain.JobID) error
	GenerateJobDescription(ctx context.Context, id domain.JobID) (string, error)

	ListCandidates(ctx context.Context, jobID domain.JobID, filter domain.CandidateFilter) ([]domain.Candidate, error)
	GetCandidate(ctx context.Context, id domain.CandidateID) (domain.Candidate, error)
	UploadResume(ctx context.Context, jobID domain.JobID, sub domain.ResumeSubmission) (domain.Candidate, error)
	UpdateCandidateStatus(ctx context.Context, id domain.CandidateID, status domain.CandidateStatus) (domain.Candidate, error)
	ReanalyzeCandidate(ctx context.Context, id domain.CandidateID) (domain.Analysis, error)
	DeleteCandidate(ctx context.Context, id domain.CandidateID) error
}
