package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veldtec/talentctl/internal/application"
	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/session"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the hiring platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.auth.Login(cmd.Context(), application.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s tier)\n",
				sess.User.Email, sess.User.SubscriptionTier)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var email string
	var password string
	var fullName string
	var companyName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a recruiter account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := app.auth.Register(cmd.Context(), application.RegistrationForm{
				Email:       email,
				Password:    password,
				FullName:    fullName,
				CompanyName: companyName,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s (%s tier)\n",
				sess.User.Email, sess.User.SubscriptionTier)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (min 8 characters)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&companyName, "company", "", "Company name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.auth.Logout(cmd.Context())

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in recruiter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.auth.Whoami(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(user)
			}

			return writeWhoami(cmd, app, user)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeWhoami(cmd *cobra.Command, app *app, user domain.User) error {
	out := cmd.OutOrStdout()

	name := user.FullName
	if name == "" {
		name = user.Email
	}

	fmt.Fprintf(out, "%s <%s>\n", name, user.Email)
	if user.CompanyName != "" {
		fmt.Fprintf(out, "company: %s\n", user.CompanyName)
	}
	fmt.Fprintf(out, "role: %s, tier: %s\n", user.Role, user.SubscriptionTier)

	if sess, ok := app.sessions.Current(); ok {
		if exp, known := session.TokenExpiry(sess.Token); known {
			fmt.Fprintf(out, "token expires: %s\n", exp.Local().Format("15:04 on 02 Jan 2006"))
		}
	}

	return nil
}
