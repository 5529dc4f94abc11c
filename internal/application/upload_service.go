package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
)

var resumeExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

var resumeMIMETypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// UploadService submits resumes and retriggers analysis. It allows at most
// one in-flight submission per job and one reanalysis per candidate; a second
// attempt while one is pending is rejected locally, before any network call.
type UploadService struct {
	gw       ports.Gateway
	cache    *Cache
	validate *validator.Validate

	mu         sync.Mutex
	uploads    map[domain.JobID]struct{}
	reanalyses map[domain.CandidateID]struct{}
}

func NewUploadService(gw ports.Gateway, cache *Cache) *UploadService {
	return &UploadService{
		gw:         gw,
		cache:      cache,
		validate:   newValidator(),
		uploads:    map[domain.JobID]struct{}{},
		reanalyses: map[domain.CandidateID]struct{}{},
	}
}

type Submission struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string
	FileName string `validate:"required"`
	File     []byte `validate:"required"`
}

// Upload validates the submission, claims the job's upload slot, and issues
// a single multipart request. The candidate appears only once the server
// confirms creation; no optimistic row is fabricated. On success the job's
// candidate list is invalidated, on failure nothing local changes.
func (s *UploadService) Upload(ctx context.Context, jobID domain.JobID, sub Submission) (domain.Candidate, error) {
	if err := s.validate.Struct(sub); err != nil {
		return domain.Candidate{}, preconditionFromValidation(err)
	}
	if err := checkResumeFile(sub.FileName, sub.File); err != nil {
		return domain.Candidate{}, err
	}

	if !s.claimUpload(jobID) {
		return domain.Candidate{}, domain.ErrUploadInFlight
	}
	defer s.releaseUpload(jobID)

	candidate, err := s.gw.UploadResume(ctx, jobID, domain.ResumeSubmission{
		Name:     sub.Name,
		Email:    sub.Email,
		Phone:    sub.Phone,
		FileName: sub.FileName,
		File:     sub.File,
	})
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("upload resume: %w", err)
	}

	s.cache.Invalidate(CandidatesKey(jobID))

	return candidate, nil
}

// Uploading reports whether a submission for the job is currently in flight.
func (s *UploadService) Uploading(jobID domain.JobID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.uploads[jobID]
	return ok
}

// Reanalyze retriggers the analysis engine for an existing candidate, under
// the same one-in-flight rule keyed by candidate.
func (s *UploadService) Reanalyze(ctx context.Context, id domain.CandidateID, jobID domain.JobID) (domain.Analysis, error) {
	s.mu.Lock()
	if _, pending := s.reanalyses[id]; pending {
		s.mu.Unlock()
		return domain.Analysis{}, domain.ErrReanalyzeInFlight
	}
	s.reanalyses[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.reanalyses, id)
		s.mu.Unlock()
	}()

	analysis, err := s.gw.ReanalyzeCandidate(ctx, id)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("reanalyze candidate: %w", err)
	}

	s.cache.Invalidate(CandidatesKey(jobID), CandidateKey(id))

	return analysis, nil
}

func (s *UploadService) claimUpload(jobID domain.JobID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, pending := s.uploads[jobID]; pending {
		return false
	}
	s.uploads[jobID] = struct{}{}

	return true
}

func (s *UploadService) releaseUpload(jobID domain.JobID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, jobID)
}

// checkResumeFile accepts PDF and Word documents only, by extension and by
// sniffing the content so a renamed file does not slip through.
func checkResumeFile(name string, data []byte) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := resumeExtensions[ext]; !ok {
		return domain.ErrUnsupportedResume
	}

	detected := mimetype.Detect(data)
	for _, allowed := range resumeMIMETypes {
		if detected.Is(allowed) {
			return nil
		}
	}

	return domain.ErrUnsupportedResume
}
