package main

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/planner"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and manage team members",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List team members in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for i, user := range a.session.Data().Users {
				fmt.Fprintf(out, "%d. %s\n", i+1, user)
			}
			return nil
		},
	}

	var addDryRun bool
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			name, err := a.session.AddUser(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", name)
			return a.commit(cmd, addDryRun)
		},
	}
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Do not save the change")

	var removeDryRun bool
	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a team member and all of their days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.RemoveUser(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return a.commit(cmd, removeDryRun)
		},
	}
	removeCmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Do not save the change")

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}

func markCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "mark <user> <YYYY-MM-DD> <vacation|personal>",
		Short: "Toggle a vacation or personal day for a user",
		Long: `Toggle a day marking for a user. Marking the same day twice with the
same category removes it. Holidays and weekends are left untouched.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := planner.ParseTool(args[2])
			if err != nil {
				return err
			}
			if _, ok := tool.(planner.DayMarking); !ok {
				return fmt.Errorf("%q is a holiday category, use the holiday command", args[2])
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.SelectUser(args[0]); err != nil {
				return err
			}
			a.session.SelectTool(tool)

			changed, err := a.session.ClickDay(args[1])
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is a holiday or weekend, nothing to mark\n", args[1])
				return nil
			}

			printDay(cmd, a.session.Data(), args[0], args[1])
			return a.commit(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not save the change")
	return cmd
}

func holidayCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "holiday <YYYY-MM-DD> <national|regional|local|convenio>",
		Short: "Toggle a shared holiday",
		Long: `Toggle a shared holiday for the whole team. Every user's marking on
that date is cleared, whether the holiday is set or removed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, err := planner.ParseTool(args[1])
			if err != nil {
				return err
			}
			if _, ok := tool.(planner.HolidayMarking); !ok {
				return fmt.Errorf("%q is not a holiday category", args[1])
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			a.session.SelectTool(tool)
			if _, err := a.session.ClickDay(args[0]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if holiday, ok := a.session.Data().Holidays[args[0]]; ok {
				fmt.Fprintf(out, "%s: %s\n", args[0], holiday.Label())
			} else {
				fmt.Fprintf(out, "%s: no holiday\n", args[0])
			}
			return a.commit(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not save the change")
	return cmd
}

func overlapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlaps",
		Short: "List dates where two or more people are on vacation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			overlaps := a.session.Overlaps()
			if len(overlaps) == 0 {
				fmt.Fprintln(out, "No overlapping vacations")
				return nil
			}
			for _, o := range overlaps {
				fmt.Fprintf(out, "%s  %s\n", o.Date, strings.Join(o.Users, ", "))
			}
			return nil
		},
	}
}

func totalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show eligible vacation and personal days per user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s %8s %8s %8s\n", "User", "V", "AP", "Total")
			for _, t := range a.session.Totals() {
				fmt.Fprintf(out, "%-24s %8d %8d %8d\n", t.User, t.VacationDays, t.PersonalDays, t.Total)
			}
			return nil
		},
	}
}

func summaryCmd() *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the month-by-user summary table",
		Long: `Show the summary table of one month. Month 0 is December of the
previous year, 1 to 12 are January to December.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := calendar.MonthlySummary(a.session.Data(), month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, summary.Title)

			width := userColumnWidth(summary.Rows)
			fmt.Fprintf(out, "%-*s", width, "")
			for _, d := range summary.Days {
				fmt.Fprintf(out, " %2d", d.Day)
			}
			fmt.Fprintln(out)

			for _, row := range summary.Rows {
				fmt.Fprintf(out, "%-*s", width, row.User)
				for _, cell := range row.Cells {
					fmt.Fprintf(out, " %2s", cellMark(cell))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 1, "Summary month index (0-12)")
	return cmd
}

func calendarCmd() *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "calendar [user]",
		Short: "Show a user's calendar for one month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			user := ""
			if len(args) == 1 {
				user = args[0]
			}
			uc, err := a.session.UserCalendar(user)
			if err != nil {
				return err
			}

			year, m, err := calendar.SummaryPeriod(month)
			if err != nil {
				return err
			}
			return printMonth(cmd.OutOrStdout(), uc, year, m)
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 1, "Month index (0 is the previous December)")
	return cmd
}

// printMonth writes one month of cal, a line per day followed by the counts
func printMonth(out io.Writer, cal calendar.Calendar, year int, month time.Month) error {
	info, err := cal.GetMonthInfo(year, month)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, info.Title)
	for _, day := range info.Days {
		fmt.Fprintf(out, "%s %-10s %s\n", day.Key, day.Weekday, day.Label)
	}
	fmt.Fprintf(out, "Workdays: %d, weekends: %d, holidays: %d, vacation: %d, personal: %d\n",
		info.WorkDays, info.Weekends, info.Holidays, info.VacationDays, info.PersonalDays)
	return nil
}

func printDay(cmd *cobra.Command, data planner.AppData, user, date string) {
	out := cmd.OutOrStdout()
	if marking, ok := data.Schedule[user][date]; ok {
		fmt.Fprintf(out, "%s %s: %s\n", user, date, marking.Label())
		return
	}
	fmt.Fprintf(out, "%s %s: cleared\n", user, date)
}

func cellMark(cell calendar.SummaryCell) string {
	switch cell.Type {
	case calendar.DayTypeHoliday:
		return "F"
	case calendar.DayTypeWeekend:
		return "·"
	case calendar.DayTypeVacation, calendar.DayTypePersonal:
		return cell.Short
	default:
		return ""
	}
}

func userColumnWidth(rows []calendar.SummaryRow) int {
	width := utf8.RuneCountInString("User")
	for _, row := range rows {
		if n := utf8.RuneCountInString(row.User); n > width {
			width = n
		}
	}
	return width
}
