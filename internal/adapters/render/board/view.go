// Package board renders jobs, candidate pipelines, and dashboard stats for
// the terminal.
package board

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/veldtec/talentctl/internal/application"
	"github.com/veldtec/talentctl/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func renderJobsView(jobs []domain.Job, s styles) string {
	lines := []string{
		s.title.Render("Job Postings"),
		s.header.Render(fmt.Sprintf("jobs: %d", len(jobs))),
	}

	if len(jobs) == 0 {
		lines = append(lines, s.empty.Render("No job postings yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, job := range jobs {
		lines = append(lines, s.section.Render(renderJob(job, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderJob(job domain.Job, s styles) string {
	meta := []string{string(job.Status), job.JobType}
	if job.Location != "" {
		meta = append(meta, job.Location)
	}
	meta = append(meta, candidateCountLabel(job.CandidateCount))

	parts := []string{
		s.jobTitle.Render(fmt.Sprintf("%s (%s)", job.Title, job.ID)),
		s.jobMeta.Render(strings.Join(meta, " · ")),
	}
	if len(job.Skills) > 0 {
		parts = append(parts, s.detail.Render("skills: "+strings.Join(job.Skills, ", ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func candidateCountLabel(n int) string {
	if n == 1 {
		return "1 candidate"
	}
	return fmt.Sprintf("%d candidates", n)
}

func renderBoardView(job domain.Job, candidates []domain.Candidate, s styles) string {
	lines := []string{
		s.title.Render("Pipeline: " + job.Title),
		s.header.Render(fmt.Sprintf("candidates: %d", len(candidates))),
	}

	if len(candidates) == 0 {
		lines = append(lines, s.empty.Render("No candidates yet. Upload a resume to get started."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	byStatus := map[domain.CandidateStatus][]domain.Candidate{}
	for _, cand := range candidates {
		byStatus[cand.Status] = append(byStatus[cand.Status], cand)
	}

	for _, status := range domain.ReviewOrder {
		group := byStatus[status]
		if len(group) == 0 {
			continue
		}
		lines = append(lines, s.section.Render(renderStage(status, group, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStage(status domain.CandidateStatus, group []domain.Candidate, s styles) string {
	heading := s.stage
	if status.Terminal() {
		heading = s.terminal
	}

	parts := []string{heading.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(string(status)), len(group)))}
	for _, cand := range group {
		parts = append(parts, renderCandidate(cand, s))
	}

	if next := status.Next(); len(next) > 0 {
		labels := make([]string, 0, len(next))
		for _, n := range next {
			labels = append(labels, string(n))
		}
		parts = append(parts, s.hint.Render("next: "+strings.Join(labels, " | ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCandidate(cand domain.Candidate, s styles) string {
	name := s.candidate.Render(fmt.Sprintf("  %s <%s>", cand.Name, cand.Email))

	if !cand.Analyzed() {
		return lipgloss.JoinHorizontal(lipgloss.Top, name, "  ", s.analyzing.Render("analyzing resume…"))
	}

	score := fmt.Sprintf("%3d", cand.AIScore)
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		name,
		"  ",
		renderScoreBar(cand.AIScore, 20, s),
		" ",
		s.detail.Render(score),
	)

	if len(cand.SkillsMatched) > 0 {
		line = lipgloss.JoinVertical(lipgloss.Left, line,
			s.detail.Render("    matched: "+strings.Join(cand.SkillsMatched, ", ")))
	}

	return line
}

func renderScoreBar(score, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	filled := int(math.Round(float64(width) * float64(score) / 100.0))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func renderStatsView(stats application.DashboardStats, s styles) string {
	lines := []string{
		s.title.Render("Dashboard"),
		s.detail.Render(fmt.Sprintf("jobs: %d (%d active)", stats.TotalJobs, stats.ActiveJobs)),
		s.detail.Render(fmt.Sprintf("candidates: %d (%d shortlisted)", stats.TotalCandidates, stats.Shortlisted)),
	}

	if stats.AverageScore > 0 {
		lines = append(lines, s.detail.Render(fmt.Sprintf("average score: %.1f", stats.AverageScore)))
	} else {
		lines = append(lines, s.empty.Render("average score: n/a"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
