package cli

import (
	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newNotificationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif"},
		Short:   "Read and manage notifications",
	}

	cmd.AddCommand(newNotificationListCmd(a))
	cmd.AddCommand(newNotificationCreateCmd(a))
	cmd.AddCommand(newNotificationMarkReadCmd(a))
	cmd.AddCommand(newNotificationMarkAllReadCmd(a))
	cmd.AddCommand(newNotificationDeleteCmd(a))

	return cmd
}

func newNotificationListCmd(a *app) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Notifications().List(cmd.Context(), unreadOnly)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")

	return cmd
}

func newNotificationCreateCmd(a *app) *cobra.Command {
	var in api.NotificationInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Send a notification to a user or group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Notifications().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Notification title (required)")
	cmd.Flags().StringVar(&in.Body, "body", "", "Notification body")
	cmd.Flags().Int64Var(&in.UserID, "user", 0, "Target user ID")
	cmd.Flags().Int64Var(&in.GroupID, "group", 0, "Target group ID")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNotificationMarkReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Notifications().MarkRead(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newNotificationMarkAllReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Notifications().MarkAllRead(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newNotificationDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Notifications().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}
