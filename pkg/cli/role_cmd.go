package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newRoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Inspect and change your account role",
	}

	cmd.AddCommand(newRoleEligibilityCmd(a))
	cmd.AddCommand(newRoleUpdateCmd(a))

	return cmd
}

func newRoleEligibilityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eligibility",
		Short: "Show whether a role change is currently allowed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.client.Users().GetRoleEligibility(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, e)
			}
			if e.CanUpdate {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Role change allowed")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Role change not allowed until %s\n",
				e.NextAllowedAt.Format("2006-01-02"))
			return nil
		},
	}
}

func newRoleUpdateCmd(a *app) *cobra.Command {
	var (
		role     string
		password string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your account role",
		Long:  "Change your account role. A successful change ends the current session; log in again afterwards.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				e, err := a.client.Users().GetRoleEligibility(cmd.Context())
				if err != nil {
					return err
				}
				if !e.CanUpdate {
					return fmt.Errorf("role change not allowed until %s (use --force to submit anyway)",
						e.NextAllowedAt.Format("2006-01-02"))
				}
			}
			if !cmd.Flags().Changed("password") {
				pw, err := promptPassword("Password: ")
				if err != nil {
					return err
				}
				password = pw
			}
			out := a.session.UpdateRole(cmd.Context(), api.Role(role), password)
			if !out.Success {
				return fmt.Errorf("role change failed: %s", out.Message)
			}
			_ = os.Remove(CookiesPath())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Role updated; session ended, log in again")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "New role (required)")
	cmd.Flags().StringVar(&password, "password", "", "Current password (prompted when omitted)")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the eligibility pre-check")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
