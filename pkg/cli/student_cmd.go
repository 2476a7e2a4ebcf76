package cli

import (
	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newStudentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage student records",
	}

	cmd.AddCommand(newStudentListCmd(a))
	cmd.AddCommand(newStudentGetCmd(a))
	cmd.AddCommand(newStudentCreateCmd(a))
	cmd.AddCommand(newStudentUpdateCmd(a))
	cmd.AddCommand(newStudentDeleteCmd(a))

	return cmd
}

func newStudentListCmd(a *app) *cobra.Command {
	var f api.StudentFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Students().List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&f.GroupID, "group", 0, "Filter by group ID")
	cmd.Flags().Int64Var(&f.OrganizationID, "org", 0, "Filter by organization ID")
	cmd.Flags().StringVar(&f.Search, "search", "", "Search by name or student ID")

	return cmd
}

func newStudentGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Students().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func studentInputFlags(cmd *cobra.Command, in *api.StudentInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Student name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Student email")
	cmd.Flags().StringVar(&in.StudentID, "student-id", "", "Student identifier")
	cmd.Flags().Int64Var(&in.GroupID, "group", 0, "Group ID")
	cmd.Flags().Int64Var(&in.OrganizationID, "org", 0, "Organization ID")
}

func newStudentCreateCmd(a *app) *cobra.Command {
	var in api.StudentInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Students().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	studentInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStudentUpdateCmd(a *app) *cobra.Command {
	var in api.StudentInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Students().Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	studentInputFlags(cmd, &in)

	return cmd
}

func newStudentDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Students().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}
