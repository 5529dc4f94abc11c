// Package api implements the gateway to the hiring platform's REST surface.
// All traffic funnels through Client.do: bearer credentials are attached
// there, and every failure collapses into the domain failure taxonomy, so
// callers never see a raw transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
	"github.com/veldtec/talentctl/internal/session"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL       string
	httpClient    *http.Client
	sessions      *session.Store
	onAuthExpired func()
}

var _ ports.Gateway = (*Client)(nil)

type Option func(*Client)

// WithAuthExpiredHook registers a callback run at most once per invalidated
// token, after the session has been cleared. The CLI uses it to steer the
// user back to login.
func WithAuthExpiredHook(hook func()) Option {
	return func(c *Client) {
		c.onAuthExpired = hook
	}
}

func NewClient(baseURL string, httpClient *http.Client, sessions *session.Store, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		sessions:   sessions,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	body := registerBody{
		Email:       reg.Email,
		Password:    reg.Password,
		FullName:    reg.FullName,
		CompanyName: reg.CompanyName,
	}

	var payload tokenPayload
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", body, &payload); err != nil {
		return domain.Session{}, err
	}
	if payload.AccessToken == "" || payload.User == nil {
		return domain.Session{}, &domain.RequestError{Kind: domain.ErrTransport, Message: "register response missing token or user"}
	}

	return domain.Session{User: payload.User.toDomain(), Token: payload.AccessToken}, nil
}

// Login posts the OAuth2 password form (username carries the email) and
// returns the access token only; identity comes from Me.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var payload tokenPayload
	err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &payload)
	if err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", &domain.RequestError{Kind: domain.ErrTransport, Message: "login response missing access token"}
	}

	return payload.AccessToken, nil
}

func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var payload userPayload
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &payload); err != nil {
		return domain.User{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) ListJobs(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	path := "/jobs"
	if status != "" {
		path += "?status_filter=" + url.QueryEscape(string(status))
	}

	var payload []jobPayload
	if err := c.doJSON(ctx, http.MethodGet, path, c.sessions.Token(), nil, &payload); err != nil {
		return nil, err
	}

	jobs := make([]domain.Job, 0, len(payload))
	for _, p := range payload {
		jobs = append(jobs, p.toDomain())
	}

	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id domain.JobID) (domain.Job, error) {
	var payload jobPayload
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/"+url.PathEscape(string(id)), c.sessions.Token(), nil, &payload); err != nil {
		return domain.Job{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) CreateJob(ctx context.Context, draft domain.JobDraft) (domain.Job, error) {
	var payload jobPayload
	if err := c.doJSON(ctx, http.MethodPost, "/jobs", c.sessions.Token(), jobCreateFromDraft(draft), &payload); err != nil {
		return domain.Job{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) UpdateJob(ctx context.Context, id domain.JobID, patch domain.JobPatch) (domain.Job, error) {
	var payload jobPayload
	if err := c.doJSON(ctx, http.MethodPut, "/jobs/"+url.PathEscape(string(id)), c.sessions.Token(), jobUpdateFromPatch(patch), &payload); err != nil {
		return domain.Job{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) DeleteJob(ctx context.Context, id domain.JobID) error {
	return c.doJSON(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(string(id)), c.sessions.Token(), nil, nil)
}

func (c *Client) GenerateJobDescription(ctx context.Context, id domain.JobID) (string, error) {
	var payload descriptionPayload
	path := "/jobs/" + url.PathEscape(string(id)) + "/generate-description"
	if err := c.doJSON(ctx, http.MethodPost, path, c.sessions.Token(), nil, &payload); err != nil {
		return "", err
	}

	return payload.Description, nil
}

func (c *Client) ListCandidates(ctx context.Context, jobID domain.JobID, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status_filter", string(filter.Status))
	}
	if filter.SortBy != "" {
		query.Set("sort_by", filter.SortBy)
	}

	path := "/candidates/job/" + url.PathEscape(string(jobID))
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var payload []candidatePayload
	if err := c.doJSON(ctx, http.MethodGet, path, c.sessions.Token(), nil, &payload); err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(payload))
	for _, p := range payload {
		candidates = append(candidates, p.toDomain())
	}

	return candidates, nil
}

func (c *Client) GetCandidate(ctx context.Context, id domain.CandidateID) (domain.Candidate, error) {
	var payload candidatePayload
	if err := c.doJSON(ctx, http.MethodGet, "/candidates/"+url.PathEscape(string(id)), c.sessions.Token(), nil, &payload); err != nil {
		return domain.Candidate{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) UploadResume(ctx context.Context, jobID domain.JobID, sub domain.ResumeSubmission) (domain.Candidate, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", sub.FileName)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(sub.File); err != nil {
		return domain.Candidate{}, fmt.Errorf("build multipart form: %w", err)
	}

	fields := map[string]string{"name": sub.Name, "email": sub.Email}
	if sub.Phone != "" {
		fields["phone"] = sub.Phone
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return domain.Candidate{}, fmt.Errorf("build multipart form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return domain.Candidate{}, fmt.Errorf("build multipart form: %w", err)
	}

	var payload candidatePayload
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/candidates/job/" + url.PathEscape(string(jobID)) + "/upload",
		body:        &buf,
		contentType: writer.FormDataContentType(),
		token:       c.sessions.Token(),
	}, &payload)
	if err != nil {
		return domain.Candidate{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) UpdateCandidateStatus(ctx context.Context, id domain.CandidateID, status domain.CandidateStatus) (domain.Candidate, error) {
	var payload candidatePayload
	path := "/candidates/" + url.PathEscape(string(id)) + "/status"
	if err := c.doJSON(ctx, http.MethodPut, path, c.sessions.Token(), statusBody{Status: string(status)}, &payload); err != nil {
		return domain.Candidate{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) ReanalyzeCandidate(ctx context.Context, id domain.CandidateID) (domain.Analysis, error) {
	var payload analysisPayload
	path := "/candidates/" + url.PathEscape(string(id)) + "/reanalyze"
	if err := c.doJSON(ctx, http.MethodPost, path, c.sessions.Token(), nil, &payload); err != nil {
		return domain.Analysis{}, err
	}

	return payload.toDomain(), nil
}

func (c *Client) DeleteCandidate(ctx context.Context, id domain.CandidateID) error {
	return c.doJSON(ctx, http.MethodDelete, "/candidates/"+url.PathEscape(string(id)), c.sessions.Token(), nil, nil)
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	token       string
}

// doJSON encodes body as JSON (when non-nil) and dispatches through do.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	req := request{method: method, path: path, token: token}

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		req.body = bytes.NewReader(encoded)
		req.contentType = "application/json"
	}

	return c.do(ctx, req, out)
}

// do performs one request and normalizes the outcome. Transport failures and
// non-2xx statuses both land in the *domain.RequestError taxonomy; a 401
// additionally invalidates the session the failed token belonged to, at most
// once however many concurrent requests hit it.
func (c *Client) do(ctx context.Context, req request, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &domain.RequestError{Kind: domain.ErrTransport}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.RequestError{Kind: domain.ErrTransport}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failureFor(ctx, resp.StatusCode, body, req.token)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.RequestError{Kind: domain.ErrTransport, Status: resp.StatusCode, Message: "malformed response from server"}
	}

	return nil
}

func (c *Client) failureFor(ctx context.Context, status int, body []byte, token string) error {
	detail := serverDetail(body)

	switch {
	case status == http.StatusUnauthorized && token != "":
		if c.sessions.Invalidate(ctx, token) && c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return &domain.RequestError{Kind: domain.ErrAuthExpired, Status: status, Message: detail}
	case status >= 400 && status < 500:
		// A 401 with no token attached is a credential rejection, not an
		// expired session; it falls through here with the rest of the 4xx.
		return &domain.RequestError{Kind: domain.ErrValidation, Status: status, Message: detail}
	default:
		// 5xx reads as "try again" to the caller, same as never reaching
		// the server.
		return &domain.RequestError{Kind: domain.ErrTransport, Status: status}
	}
}

func serverDetail(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return strings.TrimSpace(payload.Detail)
}
