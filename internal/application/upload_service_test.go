package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtec/talentctl/internal/domain"
)

// pdfBytes is a minimal file body the content sniffer recognizes as a PDF.
var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func validSubmission() Submission {
	return Submission{
		Name:     "Jane Doe",
		Email:    "jane@doe.dev",
		Phone:    "+1 555 0100",
		FileName: "jane-doe.pdf",
		File:     pdfBytes,
	}
}

func TestUploadCreatesCandidateAndRefreshesList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var created []domain.Candidate
	var mu sync.Mutex

	gw := newFakeGateway()
	gw.uploadFn = func(_ context.Context, jobID domain.JobID, sub domain.ResumeSubmission) (domain.Candidate, error) {
		assert.Equal(t, "Jane Doe", sub.Name)
		assert.Equal(t, "jane@doe.dev", sub.Email)
		assert.Equal(t, "jane-doe.pdf", sub.FileName)

		cand := domain.Candidate{ID: "c-1", JobID: jobID, Name: sub.Name, Status: domain.CandidateStatusNew}
		mu.Lock()
		created = append(created, cand)
		mu.Unlock()
		return cand, nil
	}
	gw.listCandidatesFn = func(context.Context, domain.JobID, domain.CandidateFilter) ([]domain.Candidate, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]domain.Candidate, len(created))
		copy(out, created)
		return out, nil
	}

	cache := newTestCache()
	uploads := NewUploadService(gw, cache)
	candidates := NewCandidateService(gw, cache)

	before, err := candidates.List(ctx, "j-1", domain.CandidateFilter{})
	require.NoError(t, err)
	assert.Empty(t, before)

	cand, err := uploads.Upload(ctx, "j-1", validSubmission())
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateStatusNew, cand.Status)

	after, err := candidates.List(ctx, "j-1", domain.CandidateFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Jane Doe", after[0].Name)
	assert.Equal(t, domain.CandidateStatusNew, after[0].Status)
}

func TestUploadSecondSubmissionRejectedWhileFirstInFlight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	gw := newFakeGateway()
	gw.uploadFn = func(context.Context, domain.JobID, domain.ResumeSubmission) (domain.Candidate, error) {
		close(entered)
		<-release
		return domain.Candidate{ID: "c-1"}, nil
	}

	svc := NewUploadService(gw, newTestCache())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Upload(ctx, "j-1", validSubmission())
		done <- err
	}()

	<-entered
	assert.True(t, svc.Uploading("j-1"))

	_, err := svc.Upload(ctx, "j-1", validSubmission())
	require.ErrorIs(t, err, domain.ErrUploadInFlight)
	require.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Equal(t, 1, gw.callCount("UploadResume"))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, svc.Uploading("j-1"))
}

func TestUploadSlotIsPerJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	gw := newFakeGateway()
	gw.uploadFn = func(_ context.Context, jobID domain.JobID, _ domain.ResumeSubmission) (domain.Candidate, error) {
		if jobID == "j-1" {
			once.Do(func() { close(entered) })
			<-release
		}
		return domain.Candidate{}, nil
	}

	svc := NewUploadService(gw, newTestCache())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Upload(ctx, "j-1", validSubmission())
		done <- err
	}()

	<-entered

	// a different job's slot is free
	_, err := svc.Upload(ctx, "j-2", validSubmission())
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
}

func TestUploadSlotFreesAfterFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	gw := newFakeGateway()
	calls := 0
	gw.uploadFn = func(context.Context, domain.JobID, domain.ResumeSubmission) (domain.Candidate, error) {
		calls++
		if calls == 1 {
			return domain.Candidate{}, &domain.RequestError{Kind: domain.ErrTransport}
		}
		return domain.Candidate{ID: "c-1"}, nil
	}

	svc := NewUploadService(gw, newTestCache())

	_, err := svc.Upload(ctx, "j-1", validSubmission())
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.False(t, svc.Uploading("j-1"))

	_, err = svc.Upload(ctx, "j-1", validSubmission())
	require.NoError(t, err)
}

func TestUploadFailureLeavesCachedListUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	gw := newFakeGateway()
	gw.listCandidatesFn = func(context.Context, domain.JobID, domain.CandidateFilter) ([]domain.Candidate, error) {
		return []domain.Candidate{{ID: "c-1", Name: "Existing"}}, nil
	}
	gw.uploadFn = func(context.Context, domain.JobID, domain.ResumeSubmission) (domain.Candidate, error) {
		return domain.Candidate{}, &domain.RequestError{Kind: domain.ErrTransport, Status: 500}
	}

	cache := newTestCache()
	uploads := NewUploadService(gw, cache)
	candidates := NewCandidateService(gw, cache)

	_, err := candidates.List(ctx, "j-1", domain.CandidateFilter{})
	require.NoError(t, err)

	_, err = uploads.Upload(ctx, "j-1", validSubmission())
	require.ErrorIs(t, err, domain.ErrTransport)

	list, err := candidates.List(ctx, "j-1", domain.CandidateFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Existing", list[0].Name)
	assert.Equal(t, 1, gw.callCount("ListCandidates"))
}

func TestUploadValidatesFieldsBeforeAnyCall(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	svc := NewUploadService(gw, newTestCache())
	ctx := context.Background()

	missingName := validSubmission()
	missingName.Name = ""
	_, err := svc.Upload(ctx, "j-1", missingName)
	require.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Contains(t, err.Error(), "name is required")

	badEmail := validSubmission()
	badEmail.Email = "not-an-email"
	_, err = svc.Upload(ctx, "j-1", badEmail)
	require.ErrorIs(t, err, domain.ErrPrecondition)

	emptyFile := validSubmission()
	emptyFile.File = nil
	_, err = svc.Upload(ctx, "j-1", emptyFile)
	require.ErrorIs(t, err, domain.ErrPrecondition)

	assert.Zero(t, gw.totalCalls())
}

func TestUploadRejectsUnsupportedFiles(t *testing.T) {
	t.Parallel()

	gw := newFakeGateway()
	svc := NewUploadService(gw, newTestCache())
	ctx := context.Background()

	wrongExt := validSubmission()
	wrongExt.FileName = "resume.txt"
	_, err := svc.Upload(ctx, "j-1", wrongExt)
	require.ErrorIs(t, err, domain.ErrUnsupportedResume)

	// renamed plain text does not pass the content sniff
	renamed := validSubmission()
	renamed.File = []byte("just some text pretending to be a resume")
	_, err = svc.Upload(ctx, "j-1", renamed)
	require.ErrorIs(t, err, domain.ErrUnsupportedResume)

	assert.Zero(t, gw.totalCalls())
}

func TestReanalyzeInvalidatesCandidateEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gw := newFakeGateway()
	gw.reanalyzeFn = func(context.Context, domain.CandidateID) (domain.Analysis, error) {
		return domain.Analysis{Score: 88, Summary: "strong match"}, nil
	}
	gw.getCandidateFn = func(_ context.Context, id domain.CandidateID) (domain.Candidate, error) {
		return domain.Candidate{ID: id}, nil
	}

	cache := newTestCache()
	uploads := NewUploadService(gw, cache)
	candidates := NewCandidateService(gw, cache)

	_, err := candidates.Get(ctx, "c-1")
	require.NoError(t, err)

	analysis, err := uploads.Reanalyze(ctx, "c-1", "j-1")
	require.NoError(t, err)
	assert.Equal(t, 88, analysis.Score)

	_, err = candidates.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, 2, gw.callCount("GetCandidate"))
}

func TestReanalyzeSecondAttemptRejectedWhileFirstInFlight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})

	gw := newFakeGateway()
	gw.reanalyzeFn = func(context.Context, domain.CandidateID) (domain.Analysis, error) {
		close(entered)
		<-release
		return domain.Analysis{}, nil
	}

	svc := NewUploadService(gw, newTestCache())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Reanalyze(ctx, "c-1", "j-1")
		done <- err
	}()

	<-entered

	_, err := svc.Reanalyze(ctx, "c-1", "j-1")
	require.ErrorIs(t, err, domain.ErrReanalyzeInFlight)
	assert.Equal(t, 1, gw.callCount("ReanalyzeCandidate"))

	close(release)
	require.NoError(t, <-done)
}
