package application

import (
	"context"
	"fmt"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
)

// StatusService moves candidates through the review workflow. The client
// never flips the displayed status ahead of the server: the request goes out,
// and only a confirmed write invalidates the affected cache entries. A failed
// call leaves the cached status exactly as it was.
type StatusService struct {
	gw    ports.Gateway
	cache *Cache
}

func NewStatusService(gw ports.Gateway, cache *Cache) *StatusService {
	return &StatusService{gw: gw, cache: cache}
}

// SetStatus requests the transition. The client checks only that the value
// is one of the five defined statuses; which transitions are legal is the
// server's call.
func (s *StatusService) SetStatus(ctx context.Context, id domain.CandidateID, jobID domain.JobID, status domain.CandidateStatus) (domain.Candidate, error) {
	if !status.Valid() {
		return domain.Candidate{}, domain.Precondition(fmt.Sprintf("unknown candidate status %q", status))
	}

	candidate, err := s.gw.UpdateCandidateStatus(ctx, id, status)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("update candidate status: %w", err)
	}

	s.cache.Invalidate(CandidatesKey(jobID), CandidateKey(id))

	return candidate, nil
}
