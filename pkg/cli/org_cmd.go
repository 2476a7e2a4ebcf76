package cli

import (
	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newOrgCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage organizations",
	}

	cmd.AddCommand(newOrgListCmd(a))
	cmd.AddCommand(newOrgGetCmd(a))
	cmd.AddCommand(newOrgCreateCmd(a))
	cmd.AddCommand(newOrgUpdateCmd(a))
	cmd.AddCommand(newOrgDeleteCmd(a))
	cmd.AddCommand(newOrgStatsCmd(a))
	cmd.AddCommand(newOrgDashboardCmd(a))

	return cmd
}

func newOrgListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Organizations().List(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newOrgGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Organizations().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func orgInputFlags(cmd *cobra.Command, in *api.OrganizationInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Organization name")
	cmd.Flags().StringVar(&in.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Contact phone number")
}

func newOrgCreateCmd(a *app) *cobra.Command {
	var in api.OrganizationInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Organizations().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	orgInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newOrgUpdateCmd(a *app) *cobra.Command {
	var in api.OrganizationInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Organizations().Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	orgInputFlags(cmd, &in)

	return cmd
}

func newOrgDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Organizations().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newOrgStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Attendance statistics for an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Organizations().Stats(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newOrgDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <id>",
		Short: "Organization overview, statistics, and groups in one view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, err := a.client.DashboardBundle(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, d)
		},
	}
}
