package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newAbsenceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "absence",
		Short: "Manage absence requests and approvals",
	}

	cmd.AddCommand(newAbsenceListCmd(a))
	cmd.AddCommand(newAbsenceGetCmd(a))
	cmd.AddCommand(newAbsenceCreateCmd(a))
	cmd.AddCommand(newAbsenceDeleteCmd(a))
	cmd.AddCommand(newAbsenceApproveCmd(a))
	cmd.AddCommand(newAbsenceRejectCmd(a))

	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newAbsenceListCmd(a *app) *cobra.Command {
	var (
		userID int64
		status string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List absence requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := api.AbsenceFilters{UserID: userID, Status: status}
			var err error
			if f.From, err = parseDate("from", from); err != nil {
				return err
			}
			if f.To, err = parseDate("to", to); err != nil {
				return err
			}
			res, err := a.client.AbsenceRequests().List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Filter by user ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, approved, rejected)")
	cmd.Flags().StringVar(&from, "from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Range end, YYYY-MM-DD")

	return cmd
}

func newAbsenceGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one absence request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.AbsenceRequests().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newAbsenceCreateCmd(a *app) *cobra.Command {
	var (
		userID     int64
		from       string
		to         string
		kind       string
		reason     string
		attachment string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit an absence request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := api.AbsenceRequestInput{UserID: userID, Type: kind, Reason: reason}
			var err error
			if in.From, err = parseDate("from", from); err != nil {
				return err
			}
			if in.To, err = parseDate("to", to); err != nil {
				return err
			}

			var upload *api.Upload
			if attachment != "" {
				f, err := os.Open(attachment)
				if err != nil {
					return fmt.Errorf("open attachment: %w", err)
				}
				defer f.Close()
				upload = &api.Upload{
					Field:    "attachment",
					Filename: filepath.Base(attachment),
					Reader:   f,
				}
			}

			res, err := a.client.AbsenceRequests().Create(cmd.Context(), in, upload)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID the request is for (required)")
	cmd.Flags().StringVar(&from, "from", "", "First absent day, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "Last absent day, YYYY-MM-DD")
	cmd.Flags().StringVar(&kind, "type", "", "Absence type, e.g. sick or vacation (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "Free-form reason")
	cmd.Flags().StringVar(&attachment, "attachment", "", "Supporting document to upload")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAbsenceDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Withdraw an absence request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.AbsenceRequests().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newAbsenceApproveCmd(a *app) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending absence request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.AbsenceRequests().Approve(cmd.Context(), id, comment)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Optional reviewer comment")

	return cmd
}

func newAbsenceRejectCmd(a *app) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending absence request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.AbsenceRequests().Reject(cmd.Context(), id, comment)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Reviewer comment (required)")
	_ = cmd.MarkFlagRequired("comment")

	return cmd
}
