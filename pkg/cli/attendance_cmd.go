package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newAttendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "Record and query attendance",
	}

	cmd.AddCommand(newAttendanceRecordCmd(a))
	cmd.AddCommand(newAttendanceListCmd(a))
	cmd.AddCommand(newAttendanceStatsCmd(a))
	cmd.AddCommand(newAttendanceReportCmd(a))
	cmd.AddCommand(newAttendanceDailyStatsCmd(a))
	cmd.AddCommand(newAttendanceAbsenceDetailsCmd(a))
	cmd.AddCommand(newAttendanceExportCmd(a))

	return cmd
}

// parseDate converts a --from/--to style flag value, treating empty as unset.
func parseDate(flag, value string) (api.DateOnly, error) {
	if value == "" {
		return api.DateOnly{}, nil
	}
	d, err := api.ParseDate(value)
	if err != nil {
		return api.DateOnly{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return d, nil
}

func newAttendanceRecordCmd(a *app) *cobra.Command {
	var (
		userID   int64
		date     string
		kind     string
		at       string
		recordID string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record one attendance event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate("date", date)
			if err != nil {
				return err
			}
			ts := time.Now()
			if at != "" {
				ts, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
			}
			res, err := a.client.Attendance().Record(cmd.Context(), api.RecordInput{
				UserID:    userID,
				Date:      d,
				Type:      kind,
				Timestamp: ts,
				RecordID:  recordID,
			})
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "Attendance date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&kind, "type", "", "Event type, e.g. check-in or check-out (required)")
	cmd.Flags().StringVar(&at, "at", "", "Event time, RFC 3339 (defaults to now)")
	cmd.Flags().StringVar(&recordID, "record-id", "", "Deduplication ID (minted when omitted)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAttendanceListCmd(a *app) *cobra.Command {
	var (
		userID  int64
		groupID int64
		status  string
		from    string
		to      string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attendance records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := api.ListFilters{UserID: userID, GroupID: groupID, Status: status}
			var err error
			if f.From, err = parseDate("from", from); err != nil {
				return err
			}
			if f.To, err = parseDate("to", to); err != nil {
				return err
			}
			if f.Date, err = parseDate("date", date); err != nil {
				return err
			}
			res, err := a.client.Attendance().List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Filter by user ID")
	cmd.Flags().Int64Var(&groupID, "group", 0, "Filter by group ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&from, "from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Range end, YYYY-MM-DD")
	cmd.Flags().StringVar(&date, "date", "", "Exact date, YYYY-MM-DD")

	return cmd
}

func newAttendanceStatsCmd(a *app) *cobra.Command {
	var (
		userID int64
		period string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-user attendance statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Attendance().Stats(cmd.Context(), userID, period)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID (required)")
	cmd.Flags().StringVar(&period, "period", "", "Aggregation period, e.g. week or month")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newAttendanceReportCmd(a *app) *cobra.Command {
	var (
		userID int64
		year   int
		month  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly attendance report for one user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Attendance().Report(cmd.Context(), userID, year, time.Month(month))
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	now := time.Now()
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID (required)")
	cmd.Flags().IntVar(&year, "year", now.Year(), "Report year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Report month (1-12)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newAttendanceDailyStatsCmd(a *app) *cobra.Command {
	var (
		year  int
		month int
	)

	cmd := &cobra.Command{
		Use:   "daily-stats",
		Short: "Per-day aggregate statistics for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Attendance().DailyStats(cmd.Context(), year, time.Month(month))
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12)")

	return cmd
}

func newAttendanceAbsenceDetailsCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "absence-details",
		Short: "Who was absent on a given day, and why",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDate("date", date)
			if err != nil {
				return err
			}
			res, err := a.client.Attendance().AbsenceDetails(cmd.Context(), d)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newAttendanceExportCmd(a *app) *cobra.Command {
	var (
		userID  int64
		groupID int64
		from    string
		to      string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export attendance records as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := api.ListFilters{UserID: userID, GroupID: groupID}
			var err error
			if f.From, err = parseDate("from", from); err != nil {
				return err
			}
			if f.To, err = parseDate("to", to); err != nil {
				return err
			}
			data, err := a.client.Attendance().ExportCSV(cmd.Context(), f)
			if err != nil {
				return err
			}
			if outFile == "" || outFile == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(data), outFile)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Filter by user ID")
	cmd.Flags().Int64Var(&groupID, "group", 0, "Filter by group ID")
	cmd.Flags().StringVar(&from, "from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Range end, YYYY-MM-DD")
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "Output file (default stdout)")

	return cmd
}
