package cli

import (
	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups and their membership",
	}

	cmd.AddCommand(newGroupListCmd(a))
	cmd.AddCommand(newGroupGetCmd(a))
	cmd.AddCommand(newGroupCreateCmd(a))
	cmd.AddCommand(newGroupUpdateCmd(a))
	cmd.AddCommand(newGroupDeleteCmd(a))
	cmd.AddCommand(newGroupAddMemberCmd(a))
	cmd.AddCommand(newGroupRemoveMemberCmd(a))

	return cmd
}

func newGroupListCmd(a *app) *cobra.Command {
	var orgID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Groups().List(cmd.Context(), orgID)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&orgID, "org", 0, "Filter by organization ID")

	return cmd
}

func newGroupGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Groups().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func groupInputFlags(cmd *cobra.Command, in *api.GroupInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Group name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Group description")
	cmd.Flags().Int64Var(&in.OrganizationID, "org", 0, "Organization ID")
}

func newGroupCreateCmd(a *app) *cobra.Command {
	var in api.GroupInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Groups().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	groupInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupUpdateCmd(a *app) *cobra.Command {
	var in api.GroupInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Groups().Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	groupInputFlags(cmd, &in)

	return cmd
}

func newGroupDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Groups().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newGroupAddMemberCmd(a *app) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "add-member <group-id>",
		Short: "Add a user to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Groups().AddMember(cmd.Context(), groupID, userID)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID to add (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newGroupRemoveMemberCmd(a *app) *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "remove-member <group-id>",
		Short: "Remove a user from a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Groups().RemoveMember(cmd.Context(), groupID, userID)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID to remove (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
