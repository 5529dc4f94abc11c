package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
)

// JobService mediates all job reads and writes. Reads of the unfiltered list
// and of single jobs go through the cache; mutations confirm server-side
// first and then invalidate exactly the keys they changed.
type JobService struct {
	gw    ports.Gateway
	cache *Cache
}

func NewJobService(gw ports.Gateway, cache *Cache) *JobService {
	return &JobService{gw: gw, cache: cache}
}

// List returns the recruiter's postings. Filtered listings bypass the cache:
// only the canonical unfiltered collection is cached under JobsKey, so
// invalidation stays a single-key affair.
func (s *JobService) List(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	if status != "" {
		if !status.Valid() {
			return nil, domain.Precondition(fmt.Sprintf("unknown job status %q", status))
		}
		return s.gw.ListJobs(ctx, status)
	}

	return fetchAs(ctx, s.cache, JobsKey, func(ctx context.Context) ([]domain.Job, error) {
		return s.gw.ListJobs(ctx, "")
	})
}

func (s *JobService) Get(ctx context.Context, id domain.JobID) (domain.Job, error) {
	return fetchAs(ctx, s.cache, JobKey(id), func(ctx context.Context) (domain.Job, error) {
		return s.gw.GetJob(ctx, id)
	})
}

func (s *JobService) Create(ctx context.Context, draft domain.JobDraft) (domain.Job, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.Job{}, domain.Precondition("title is required")
	}
	if draft.JobType == "" {
		draft.JobType = "full-time"
	}

	job, err := s.gw.CreateJob(ctx, draft)
	if err != nil {
		return domain.Job{}, fmt.Errorf("create job: %w", err)
	}

	s.cache.Invalidate(JobsKey)

	return job, nil
}

func (s *JobService) Update(ctx context.Context, id domain.JobID, patch domain.JobPatch) (domain.Job, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Job{}, domain.Precondition(fmt.Sprintf("unknown job status %q", *patch.Status))
	}

	job, err := s.gw.UpdateJob(ctx, id, patch)
	if err != nil {
		return domain.Job{}, fmt.Errorf("update job: %w", err)
	}

	s.cache.Invalidate(JobsKey, JobKey(id))

	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id domain.JobID) error {
	if err := s.gw.DeleteJob(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	// Candidates cascade with the job server-side.
	s.cache.Invalidate(JobsKey, JobKey(id), CandidatesKey(id))

	return nil
}

// GenerateDescription asks the platform for an AI-drafted description. The
// server does not persist the draft; it only lands once the recruiter saves
// it through Update, so no cache key changes here.
func (s *JobService) GenerateDescription(ctx context.Context, id domain.JobID) (string, error) {
	description, err := s.gw.GenerateJobDescription(ctx, id)
	if err != nil {
		return "", fmt.Errorf("generate job description: %w", err)
	}

	return description, nil
}

// DashboardStats is the aggregate view across all postings.
type DashboardStats struct {
	TotalJobs       int
	ActiveJobs      int
	TotalCandidates int
	Shortlisted     int
	AverageScore    float64
}

// Stats aggregates cached data client-side; it issues at most one list
// request per job plus one for the job collection.
func (s *JobService) Stats(ctx context.Context, candidates *CandidateService) (DashboardStats, error) {
	jobs, err := s.List(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{TotalJobs: len(jobs)}

	var scoreSum, scored int
	for _, job := range jobs {
		if job.Status == domain.JobStatusActive {
			stats.ActiveJobs++
		}

		list, err := candidates.List(ctx, job.ID, domain.CandidateFilter{})
		if err != nil {
			return DashboardStats{}, err
		}

		stats.TotalCandidates += len(list)
		for _, cand := range list {
			if cand.Status == domain.CandidateStatusShortlisted {
				stats.Shortlisted++
			}
			if cand.Analyzed() {
				scoreSum += cand.AIScore
				scored++
			}
		}
	}

	if scored > 0 {
		stats.AverageScore = float64(scoreSum) / float64(scored)
	}

	return stats, nil
}
