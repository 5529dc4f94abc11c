package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tc",
		Short:         "talentctl (tc): recruiter client for the hiring platform",
		Long:          "tc (talentctl) lets recruiters sign in, manage job postings, upload candidate resumes, and move candidates through the review pipeline from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newJobCmd(app),
		newCandidateCmd(app),
		newDashboardCmd(app),
	)

	return rootCmd
}
