package api

import (
	"time"

	"github.com/veldtec/talentctl/internal/domain"
)

// Wire shapes for the platform API. Every response is decoded into one of
// these validated structs at the gateway boundary; nothing loosely typed
// leaks past this package.

type errorPayload struct {
	Detail string `json:"detail"`
}

type tokenPayload struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *userPayload `json:"user,omitempty"`
}

type userPayload struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	CompanyName      string    `json:"company_name"`
	Role             string    `json:"role"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
}

func (p userPayload) toDomain() domain.User {
	return domain.User{
		ID:               domain.UserID(p.ID),
		Email:            p.Email,
		FullName:         p.FullName,
		CompanyName:      p.CompanyName,
		Role:             p.Role,
		SubscriptionTier: p.SubscriptionTier,
		CreatedAt:        p.CreatedAt,
	}
}

type registerBody struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

type jobPayload struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Requirements   string    `json:"requirements"`
	Skills         []string  `json:"skills"`
	Location       string    `json:"location"`
	SalaryRange    string    `json:"salary_range"`
	JobType        string    `json:"job_type"`
	Status         string    `json:"status"`
	CandidateCount int       `json:"candidate_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p jobPayload) toDomain() domain.Job {
	return domain.Job{
		ID:             domain.JobID(p.ID),
		Title:          p.Title,
		Description:    p.Description,
		Requirements:   p.Requirements,
		Skills:         p.Skills,
		Location:       p.Location,
		SalaryRange:    p.SalaryRange,
		JobType:        p.JobType,
		Status:         domain.JobStatus(p.Status),
		CandidateCount: p.CandidateCount,
		CreatedAt:      p.CreatedAt,
	}
}

type jobCreateBody struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Location     string   `json:"location,omitempty"`
	SalaryRange  string   `json:"salary_range,omitempty"`
	JobType      string   `json:"job_type,omitempty"`
}

func jobCreateFromDraft(draft domain.JobDraft) jobCreateBody {
	return jobCreateBody{
		Title:        draft.Title,
		Description:  draft.Description,
		Requirements: draft.Requirements,
		Skills:       draft.Skills,
		Location:     draft.Location,
		SalaryRange:  draft.SalaryRange,
		JobType:      draft.JobType,
	}
}

type jobUpdateBody struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Requirements *string  `json:"requirements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Location     *string  `json:"location,omitempty"`
	SalaryRange  *string  `json:"salary_range,omitempty"`
	JobType      *string  `json:"job_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

func jobUpdateFromPatch(patch domain.JobPatch) jobUpdateBody {
	body := jobUpdateBody{
		Title:        patch.Title,
		Description:  patch.Description,
		Requirements: patch.Requirements,
		Skills:       patch.Skills,
		Location:     patch.Location,
		SalaryRange:  patch.SalaryRange,
		JobType:      patch.JobType,
	}
	if patch.Status != nil {
		status := string(*patch.Status)
		body.Status = &status
	}

	return body
}

type candidatePayload struct {
	ID              string    `json:"id"`
	JobID           string    `json:"job_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ResumeURL       string    `json:"resume_url"`
	AIScore         int       `json:"ai_score"`
	AISummary       string    `json:"ai_summary"`
	SkillsMatched   []string  `json:"skills_matched"`
	ExperienceYears int       `json:"experience_years"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p candidatePayload) toDomain() domain.Candidate {
	return domain.Candidate{
		ID:              domain.CandidateID(p.ID),
		JobID:           domain.JobID(p.JobID),
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		ResumeURL:       p.ResumeURL,
		Status:          domain.CandidateStatus(p.Status),
		AIScore:         p.AIScore,
		AISummary:       p.AISummary,
		SkillsMatched:   p.SkillsMatched,
		ExperienceYears: p.ExperienceYears,
		CreatedAt:       p.CreatedAt,
	}
}

type statusBody struct {
	Status string `json:"status"`
}

type analysisPayload struct {
	Score           int      `json:"score"`
	Summary         string   `json:"summary"`
	SkillsMatched   []string `json:"skills_matched"`
	ExperienceYears int      `json:"experience_years"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
}

func (p analysisPayload) toDomain() domain.Analysis {
	return domain.Analysis{
		Score:           p.Score,
		Summary:         p.Summary,
		SkillsMatched:   p.SkillsMatched,
		ExperienceYears: p.ExperienceYears,
		Strengths:       p.Strengths,
		Concerns:        p.Concerns,
	}
}

type descriptionPayload struct {
	Description string `json:"description"`
}
