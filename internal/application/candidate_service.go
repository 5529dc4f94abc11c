package application

import (
	"context"
	"fmt"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
)

// CandidateService serves candidate reads and deletion. Status changes live
// in StatusService, creation in UploadService.
type CandidateService struct {
	gw    ports.Gateway
	cache *Cache
}

func NewCandidateService(gw ports.Gateway, cache *Cache) *CandidateService {
	return &CandidateService{gw: gw, cache: cache}
}

// List returns a job's candidates, ranked by the server. As with jobs, only
// the unfiltered listing is cached.
func (s *CandidateService) List(ctx context.Context, jobID domain.JobID, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	if filter.Status != "" || filter.SortBy != "" {
		if filter.Status != "" && !filter.Status.Valid() {
			return nil, domain.Precondition(fmt.Sprintf("unknown candidate status %q", filter.Status))
		}
		return s.gw.ListCandidates(ctx, jobID, filter)
	}

	return fetchAs(ctx, s.cache, CandidatesKey(jobID), func(ctx context.Context) ([]domain.Candidate, error) {
		return s.gw.ListCandidates(ctx, jobID, domain.CandidateFilter{})
	})
}

func (s *CandidateService) Get(ctx context.Context, id domain.CandidateID) (domain.Candidate, error) {
	return fetchAs(ctx, s.cache, CandidateKey(id), func(ctx context.Context) (domain.Candidate, error) {
		return s.gw.GetCandidate(ctx, id)
	})
}

func (s *CandidateService) Delete(ctx context.Context, id domain.CandidateID, jobID domain.JobID) error {
	if err := s.gw.DeleteCandidate(ctx, id); err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}

	s.cache.Invalidate(CandidatesKey(jobID), CandidateKey(id))

	return nil
}
