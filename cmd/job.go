package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldtec/talentctl/internal/adapters/render/board"
	"github.com/veldtec/talentctl/internal/domain"
)

func newJobCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage job postings",
	}

	cmd.AddCommand(
		newJobListCmd(app),
		newJobShowCmd(app),
		newJobCreateCmd(app),
		newJobUpdateCmd(app),
		newJobDeleteCmd(app),
		newJobDescribeCmd(app),
	)

	return cmd
}

func newJobListCmd(app *app) *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job postings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := app.jobs.List(cmd.Context(), domain.JobStatus(status))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(jobs)
			}

			rendered, err := board.RenderJobs(jobs, board.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render jobs: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active|paused|closed)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newJobShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := app.jobs.Get(cmd.Context(), domain.JobID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(job)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", job.Title, job.ID)
			fmt.Fprintf(out, "status: %s, type: %s\n", job.Status, job.JobType)
			if job.Location != "" {
				fmt.Fprintf(out, "location: %s\n", job.Location)
			}
			if job.SalaryRange != "" {
				fmt.Fprintf(out, "salary: %s\n", job.SalaryRange)
			}
			if len(job.Skills) > 0 {
				fmt.Fprintf(out, "skills: %s\n", strings.Join(job.Skills, ", "))
			}
			if job.Description != "" {
				fmt.Fprintf(out, "\n%s\n", job.Description)
			}
			if job.Requirements != "" {
				fmt.Fprintf(out, "\nRequirements:\n%s\n", job.Requirements)
			}
			fmt.Fprintf(out, "\ncandidates: %d\n", job.CandidateCount)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newJobCreateCmd(app *app) *cobra.Command {
	var draft domain.JobDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job posting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := app.jobs.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created job %q (%s)\n", job.Title, job.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&draft.Title, "title", "", "Job title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Job description")
	cmd.Flags().StringVar(&draft.Requirements, "requirements", "", "Job requirements")
	cmd.Flags().StringSliceVar(&draft.Skills, "skills", nil, "Required skills (comma separated)")
	cmd.Flags().StringVar(&draft.Location, "location", "", "Job location")
	cmd.Flags().StringVar(&draft.SalaryRange, "salary", "", "Salary range")
	cmd.Flags().StringVar(&draft.JobType, "type", "full-time", "Job type")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newJobUpdateCmd(app *app) *cobra.Command {
	var title, description, requirements, location, salary, jobType, status string
	var skills []string

	cmd := &cobra.Command{
		Use:   "update <job-id>",
		Short: "Update a job posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := domain.JobPatch{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("requirements") {
				patch.Requirements = &requirements
			}
			if flags.Changed("skills") {
				patch.Skills = skills
			}
			if flags.Changed("location") {
				patch.Location = &location
			}
			if flags.Changed("salary") {
				patch.SalaryRange = &salary
			}
			if flags.Changed("type") {
				patch.JobType = &jobType
			}
			if flags.Changed("status") {
				jobStatus := domain.JobStatus(status)
				patch.Status = &jobStatus
			}

			job, err := app.jobs.Update(cmd.Context(), domain.JobID(args[0]), patch)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated job %q (%s)\n", job.Title, job.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().StringVar(&description, "description", "", "Job description")
	cmd.Flags().StringVar(&requirements, "requirements", "", "Job requirements")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Required skills (comma separated)")
	cmd.Flags().StringVar(&location, "location", "", "Job location")
	cmd.Flags().StringVar(&salary, "salary", "", "Salary range")
	cmd.Flags().StringVar(&jobType, "type", "", "Job type")
	cmd.Flags().StringVar(&status, "status", "", "Job status (active|paused|closed)")

	return cmd
}

func newJobDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-id>",
		Short: "Delete a job posting and its candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.jobs.Delete(cmd.Context(), domain.JobID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted job %s\n", args[0])
			return err
		},
	}
}

func newJobDescribeCmd(app *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "describe <job-id>",
		Short: "Draft a job description with the platform's AI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.JobID(args[0])

			description, err := app.jobs.GenerateDescription(cmd.Context(), id)
			if err != nil {
				return err
			}

			if save {
				if _, err := app.jobs.Update(cmd.Context(), id, domain.JobPatch{Description: &description}); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), description)
			return err
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the drafted description to the posting")

	return cmd
}
