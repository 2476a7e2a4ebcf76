package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"shukketsu/pkg/api"
)

func newTimetableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timetable",
		Short: "Manage timetable entries",
	}

	cmd.AddCommand(newTimetableListCmd(a))
	cmd.AddCommand(newTimetableGetCmd(a))
	cmd.AddCommand(newTimetableCreateCmd(a))
	cmd.AddCommand(newTimetableUpdateCmd(a))
	cmd.AddCommand(newTimetableDeleteCmd(a))
	cmd.AddCommand(newTimetableImportCmd(a))
	cmd.AddCommand(newTimetableCalendarCmd(a))

	return cmd
}

func newTimetableListCmd(a *app) *cobra.Command {
	var (
		groupID int64
		from    string
		to      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timetable entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := api.TimetableFilters{GroupID: groupID}
			var err error
			if f.From, err = parseDate("from", from); err != nil {
				return err
			}
			if f.To, err = parseDate("to", to); err != nil {
				return err
			}
			res, err := a.client.Timetables().List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	cmd.Flags().Int64Var(&groupID, "group", 0, "Filter by group ID")
	cmd.Flags().StringVar(&from, "from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Range end, YYYY-MM-DD")

	return cmd
}

func newTimetableGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one timetable entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Timetables().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

type timetableFlags struct {
	title    string
	date     string
	startsAt string
	endsAt   string
	groupID  int64
	location string
}

func (f *timetableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Entry title")
	cmd.Flags().StringVar(&f.date, "date", "", "Entry date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.startsAt, "starts-at", "", "Start time, RFC 3339")
	cmd.Flags().StringVar(&f.endsAt, "ends-at", "", "End time, RFC 3339")
	cmd.Flags().Int64Var(&f.groupID, "group", 0, "Group ID")
	cmd.Flags().StringVar(&f.location, "location", "", "Room or location")
}

func (f *timetableFlags) input() (api.TimetableInput, error) {
	in := api.TimetableInput{Title: f.title, GroupID: f.groupID, Location: f.location}
	var err error
	if in.Date, err = parseDate("date", f.date); err != nil {
		return in, err
	}
	if f.startsAt != "" {
		if in.StartsAt, err = time.Parse(time.RFC3339, f.startsAt); err != nil {
			return in, fmt.Errorf("invalid --starts-at: %w", err)
		}
	}
	if f.endsAt != "" {
		if in.EndsAt, err = time.Parse(time.RFC3339, f.endsAt); err != nil {
			return in, fmt.Errorf("invalid --ends-at: %w", err)
		}
	}
	return in, nil
}

func newTimetableCreateCmd(a *app) *cobra.Command {
	var f timetableFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a timetable entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			res, err := a.client.Timetables().Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newTimetableUpdateCmd(a *app) *cobra.Command {
	var f timetableFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a timetable entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := f.input()
			if err != nil {
				return err
			}
			res, err := a.client.Timetables().Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}

	f.register(cmd)

	return cmd
}

func newTimetableDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a timetable entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.client.Timetables().Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newTimetableImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import timetable entries from an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open workbook: %w", err)
			}
			defer f.Close()
			res, err := a.client.Timetables().ImportExcel(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
}

func newTimetableCalendarCmd(a *app) *cobra.Command {
	var (
		userID int64
		year   int
		month  int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Attendance, timetable, and daily statistics for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client.CalendarBundle(cmd.Context(), userID, year, time.Month(month))
			if err != nil {
				return err
			}
			return printResult(cmd, c)
		},
	}

	now := time.Now()
	cmd.Flags().Int64Var(&userID, "user", 0, "User ID (required)")
	cmd.Flags().IntVar(&year, "year", now.Year(), "Calendar year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Calendar month (1-12)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
