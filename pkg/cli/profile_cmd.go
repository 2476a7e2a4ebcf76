package cli

import (
	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your account profile",
	}

	cmd.AddCommand(newProfileUpdateCmd(a))

	return cmd
}

func newProfileUpdateCmd(a *app) *cobra.Command {
	var in api.ProfileInput

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your name, email, or department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Users().UpdateProfile(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Department, "department", "", "Department")

	return cmd
}
