package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldtec/talentctl/internal/adapters/render/board"
	"github.com/veldtec/talentctl/internal/application"
	"github.com/veldtec/talentctl/internal/domain"
)

func newCandidateCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidate",
		Short: "Manage a job's candidates",
	}

	cmd.AddCommand(
		newCandidateListCmd(app),
		newCandidateShowCmd(app),
		newCandidateUploadCmd(app),
		newCandidateStatusCmd(app),
		newCandidateReanalyzeCmd(app),
		newCandidateDeleteCmd(app),
	)

	return cmd
}

func newCandidateListCmd(app *app) *cobra.Command {
	var status string
	var sortBy string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <job-id>",
		Short: "Show a job's candidate pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := domain.JobID(args[0])

			candidates, err := app.candidates.List(cmd.Context(), jobID, domain.CandidateFilter{
				Status: domain.CandidateStatus(status),
				SortBy: sortBy,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(candidates)
			}

			job, err := app.jobs.Get(cmd.Context(), jobID)
			if err != nil {
				return err
			}

			rendered, err := board.RenderBoard(job, candidates, board.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render pipeline: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by review status")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort order (ai_score|created_at)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newCandidateShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <candidate-id>",
		Short: "Show one candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := app.candidates.Get(cmd.Context(), domain.CandidateID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(candidate)
			}

			return writeCandidate(cmd, candidate)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeCandidate(cmd *cobra.Command, candidate domain.Candidate) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s <%s>\n", candidate.Name, candidate.Email)
	if candidate.Phone != "" {
		fmt.Fprintf(out, "phone: %s\n", candidate.Phone)
	}
	fmt.Fprintf(out, "job: %s, status: %s\n", candidate.JobID, candidate.Status)

	if !candidate.Analyzed() {
		fmt.Fprintln(out, "analysis: pending")
		return nil
	}

	fmt.Fprintf(out, "score: %d/100\n", candidate.AIScore)
	if candidate.ExperienceYears > 0 {
		fmt.Fprintf(out, "experience: %d years\n", candidate.ExperienceYears)
	}
	if len(candidate.SkillsMatched) > 0 {
		fmt.Fprintf(out, "matched skills: %s\n", strings.Join(candidate.SkillsMatched, ", "))
	}
	if candidate.AISummary != "" {
		fmt.Fprintf(out, "\n%s\n", candidate.AISummary)
	}

	return nil
}

func newCandidateUploadCmd(app *app) *cobra.Command {
	var name string
	var email string
	var phone string
	var filePath string

	cmd := &cobra.Command{
		Use:   "upload <job-id>",
		Short: "Upload a resume and create a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := domain.JobID(args[0])

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read resume file: %w", err)
			}

			var candidate domain.Candidate
			err = runWithSpinner(cmd, "Uploading resume", func() error {
				var uploadErr error
				candidate, uploadErr = app.uploads.Upload(cmd.Context(), jobID, application.Submission{
					Name:     name,
					Email:    email,
					Phone:    phone,
					FileName: filepath.Base(filePath),
					File:     data,
				})
				return uploadErr
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Uploaded %s (%s); analysis is running, check `tc candidate list %s` shortly\n",
				candidate.Name, candidate.ID, jobID)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Candidate name")
	cmd.Flags().StringVar(&email, "email", "", "Candidate email")
	cmd.Flags().StringVar(&phone, "phone", "", "Candidate phone")
	cmd.Flags().StringVar(&filePath, "file", "", "Path to the resume (PDF or Word)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCandidateStatusCmd(app *app) *cobra.Command {
	var jobID string
	var to string

	cmd := &cobra.Command{
		Use:   "status <candidate-id>",
		Short: "Move a candidate through the review pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate, err := app.workflow.SetStatus(
				cmd.Context(),
				domain.CandidateID(args[0]),
				domain.JobID(jobID),
				domain.CandidateStatus(to),
			)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", candidate.Name, candidate.Status)
			return err
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job the candidate belongs to")
	cmd.Flags().StringVar(&to, "to", "", "Target status (new|reviewing|shortlisted|rejected|hired)")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newCandidateReanalyzeCmd(app *app) *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "reanalyze <candidate-id>",
		Short: "Re-run the AI analysis for a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var analysis domain.Analysis
			err := runWithSpinner(cmd, "Reanalyzing resume", func() error {
				var reErr error
				analysis, reErr = app.uploads.Reanalyze(cmd.Context(), domain.CandidateID(args[0]), domain.JobID(jobID))
				return reErr
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "score: %d/100\n", analysis.Score)
			if analysis.Summary != "" {
				fmt.Fprintln(out, analysis.Summary)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job the candidate belongs to")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func newCandidateDeleteCmd(app *app) *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "delete <candidate-id>",
		Short: "Delete a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.candidates.Delete(cmd.Context(), domain.CandidateID(args[0]), domain.JobID(jobID)); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted candidate %s\n", args[0])
			return err
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "Job the candidate belongs to")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
