package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shukketsu/pkg/api"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out, and inspect the current session",
	}

	cmd.AddCommand(newAuthLoginCmd(a))
	cmd.AddCommand(newAuthLogoutCmd(a))
	cmd.AddCommand(newAuthWhoamiCmd(a))
	cmd.AddCommand(newAuthRegisterCmd(a))
	cmd.AddCommand(newAuthForgotPasswordCmd(a))
	cmd.AddCommand(newAuthResetPasswordCmd(a))

	return cmd
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; pass --password instead")
	}
	_, _ = fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func newAuthLoginCmd(a *app) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("password") {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				password = pw
			}
			out := a.session.Login(cmd.Context(), email, password)
			if !out.Success {
				return fmt.Errorf("login failed: %s", out.Message)
			}
			st := a.session.Snapshot()
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, st.User)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", st.User.Name, st.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and discard local credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Logout(cmd.Context())
			_ = os.Remove(CookiesPath())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Bootstrap(cmd.Context())
			st := a.session.Snapshot()
			if !st.IsAuthenticated {
				return fmt.Errorf("not logged in")
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, st.User)
			}
			u := st.User
			PrintTable(cmd.OutOrStdout(),
				[]string{"id", "name", "email", "role"},
				[][]string{{fmt.Sprintf("%d", u.ID), u.Name, u.Email, string(u.Role)}})
			return nil
		},
	}
}

func newAuthRegisterCmd(a *app) *cobra.Command {
	var in api.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("password") {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				in.Password = pw
			}
			out := a.session.Register(cmd.Context(), in)
			if !out.Success {
				return fmt.Errorf("registration failed: %s", out.Message)
			}
			st := a.session.Snapshot()
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, st.User)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered as %s\n", st.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar((*string)(&in.Role), "role", "", "Account role")
	cmd.Flags().StringVar(&in.StudentID, "student-id", "", "Student identifier")
	cmd.Flags().StringVar(&in.EmployeeID, "employee-id", "", "Employee identifier")
	cmd.Flags().StringVar(&in.Department, "department", "", "Department")
	cmd.Flags().Int64Var(&in.OrganizationID, "org", 0, "Organization ID")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthForgotPasswordCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Auth().ForgotPassword(cmd.Context(), email)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAuthResetPasswordCmd(a *app) *cobra.Command {
	var (
		token    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("password") {
				pw, err := promptPassword("New password: ")
				if err != nil {
					return err
				}
				password = pw
			}
			res, err := a.client.Auth().ResetPassword(cmd.Context(), token, password)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reset token from the email (required)")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}
