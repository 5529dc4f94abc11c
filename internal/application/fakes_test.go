package application

import (
	"context"
	"sync"
	"time"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
	"github.com/veldtec/talentctl/internal/session"
)

// fakeGateway implements ports.Gateway with overridable call hooks and a call
// counter per method, so tests can assert exactly how many requests a service
// issued.
type fakeGateway struct {
	mu    sync.Mutex
	calls map[string]int

	registerFn       func(ctx context.Context, reg domain.Registration) (domain.Session, error)
	loginFn          func(ctx context.Context, email, password string) (string, error)
	meFn             func(ctx context.Context, token string) (domain.User, error)
	listJobsFn       func(ctx context.Context, status domain.JobStatus) ([]domain.Job, error)
	getJobFn         func(ctx context.Context, id domain.JobID) (domain.Job, error)
	createJobFn      func(ctx context.Context, draft domain.JobDraft) (domain.Job, error)
	updateJobFn      func(ctx context.Context, id domain.JobID, patch domain.JobPatch) (domain.Job, error)
	deleteJobFn      func(ctx context.Context, id domain.JobID) error
	describeJobFn    func(ctx context.Context, id domain.JobID) (string, error)
	listCandidatesFn func(ctx context.Context, jobID domain.JobID, filter domain.CandidateFilter) ([]domain.Candidate, error)
	getCandidateFn   func(ctx context.Context, id domain.CandidateID) (domain.Candidate, error)
	uploadFn         func(ctx context.Context, jobID domain.JobID, sub domain.ResumeSubmission) (domain.Candidate, error)
	setStatusFn      func(ctx context.Context, id domain.CandidateID, status domain.CandidateStatus) (domain.Candidate, error)
	reanalyzeFn      func(ctx context.Context, id domain.CandidateID) (domain.Analysis, error)
	deleteCandFn     func(ctx context.Context, id domain.CandidateID) error
}

var _ ports.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: map[string]int{}}
}

func (f *fakeGateway) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
}

func (f *fakeGateway) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeGateway) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeGateway) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	f.record("Register")
	if f.registerFn == nil {
		return domain.Session{}, nil
	}
	return f.registerFn(ctx, reg)
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, error) {
	f.record("Login")
	if f.loginFn == nil {
		return "", nil
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeGateway) Me(ctx context.Context, token string) (domain.User, error) {
	f.record("Me")
	if f.meFn == nil {
		return domain.User{}, nil
	}
	return f.meFn(ctx, token)
}

func (f *fakeGateway) ListJobs(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	f.record("ListJobs")
	if f.listJobsFn == nil {
		return nil, nil
	}
	return f.listJobsFn(ctx, status)
}

func (f *fakeGateway) GetJob(ctx context.Context, id domain.JobID) (domain.Job, error) {
	f.record("GetJob")
	if f.getJobFn == nil {
		return domain.Job{}, nil
	}
	return f.getJobFn(ctx, id)
}

func (f *fakeGateway) CreateJob(ctx context.Context, draft domain.JobDraft) (domain.Job, error) {
	f.record("CreateJob")
	if f.createJobFn == nil {
		return domain.Job{}, nil
	}
	return f.createJobFn(ctx, draft)
}

func (f *fakeGateway) UpdateJob(ctx context.Context, id domain.JobID, patch domain.JobPatch) (domain.Job, error) {
	f.record("UpdateJob")
	if f.updateJobFn == nil {
		return domain.Job{}, nil
	}
	return f.updateJobFn(ctx, id, patch)
}

func (f *fakeGateway) DeleteJob(ctx context.Context, id domain.JobID) error {
	f.record("DeleteJob")
	if f.deleteJobFn == nil {
		return nil
	}
	return f.deleteJobFn(ctx, id)
}

func (f *fakeGateway) GenerateJobDescription(ctx context.Context, id domain.JobID) (string, error) {
	f.record("GenerateJobDescription")
	if f.describeJobFn == nil {
		return "", nil
	}
	return f.describeJobFn(ctx, id)
}

func (f *fakeGateway) ListCandidates(ctx context.Context, jobID domain.JobID, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	f.record("ListCandidates")
	if f.listCandidatesFn == nil {
		return nil, nil
	}
	return f.listCandidatesFn(ctx, jobID, filter)
}

func (f *fakeGateway) GetCandidate(ctx context.Context, id domain.CandidateID) (domain.Candidate, error) {
	f.record("GetCandidate")
	if f.getCandidateFn == nil {
		return domain.Candidate{}, nil
	}
	return f.getCandidateFn(ctx, id)
}

func (f *fakeGateway) UploadResume(ctx context.Context, jobID domain.JobID, sub domain.ResumeSubmission) (domain.Candidate, error) {
	f.record("UploadResume")
	if f.uploadFn == nil {
		return domain.Candidate{}, nil
	}
	return f.uploadFn(ctx, jobID, sub)
}

func (f *fakeGateway) UpdateCandidateStatus(ctx context.Context, id domain.CandidateID, status domain.CandidateStatus) (domain.Candidate, error) {
	f.record("UpdateCandidateStatus")
	if f.setStatusFn == nil {
		return domain.Candidate{}, nil
	}
	return f.setStatusFn(ctx, id, status)
}

func (f *fakeGateway) ReanalyzeCandidate(ctx context.Context, id domain.CandidateID) (domain.Analysis, error) {
	f.record("ReanalyzeCandidate")
	if f.reanalyzeFn == nil {
		return domain.Analysis{}, nil
	}
	return f.reanalyzeFn(ctx, id)
}

func (f *fakeGateway) DeleteCandidate(ctx context.Context, id domain.CandidateID) error {
	f.record("DeleteCandidate")
	if f.deleteCandFn == nil {
		return nil
	}
	return f.deleteCandFn(ctx, id)
}

// memTokenStore keeps session records in memory for service tests.
type memTokenStore struct {
	mu      sync.Mutex
	records map[string]string
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{records: map[string]string{}}
}

func (m *memTokenStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.records[key]
	if !ok {
		return "", domain.ErrSessionRecordNotFound
	}
	return value, nil
}

func (m *memTokenStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
	return nil
}

func (m *memTokenStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func newTestSessions() *session.Store {
	return session.NewStore(newMemTokenStore())
}

// fakeClock is a settable clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ ports.Clock = (*fakeClock)(nil)

func newTestCache() *Cache {
	return NewCache(ports.SystemClock{}, time.Minute)
}
