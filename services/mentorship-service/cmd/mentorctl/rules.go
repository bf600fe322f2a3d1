package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage global schedules and mentor availability",
	}
	cmd.AddCommand(newRulesListCmd(a), newRulesAddCmd(a), newRulesDeleteCmd(a))
	return cmd
}

func newRulesListCmd(a *app) *cobra.Command {
	var mentorID string
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List rules",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tID\tMENTOR\tDAY\tSTART\tEND\tACTIVE")

			if mentorID == "" {
				schedules, err := a.rules.ListSchedules(ctx)
				if err != nil {
					return fmt.Errorf("list schedules: %w", err)
				}
				for _, s := range schedules {
					fmt.Fprintf(tw, "global\t%s\t-\t%s\t%s\t%s\t%t\n", s.ID, s.DayOfWeek, s.StartTime, s.EndTime, s.IsActive)
				}
			}
			avail, err := a.rules.ListMentorAvailability(ctx, mentorID)
			if err != nil {
				return fmt.Errorf("list mentor availability: %w", err)
			}
			for _, m := range avail {
				fmt.Fprintf(tw, "mentor\t%s\t%s\t%s\t%s\t%s\t%t\n", m.ID, m.MentorID, m.DayOfWeek, m.StartTime, m.EndTime, m.IsActive)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&mentorID, "mentor", "", "only show this mentor's availability")
	return cmd
}

func newRulesAddCmd(a *app) *cobra.Command {
	var (
		mentorID   string
		day        string
		start, end string
		inactive   bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a global schedule, or a mentor window with --mentor",
		Example: `  mentorctl rules add --day mon --start 08:00 --end 18:00
  mentorctl rules add --mentor 4f6c... --day 3 --start 10:00 --end 13:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			weekday, err := parseWeekday(day)
			if err != nil {
				return err
			}
			active := !inactive
			ctx := cmd.Context()

			if mentorID == "" {
				s, err := a.rules.CreateSchedule(ctx, rules.ScheduleInput{
					DayOfWeek: &weekday, StartTime: &start, EndTime: &end, IsActive: &active,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.ID)
				return nil
			}
			m, err := a.rules.CreateMentorAvailability(ctx, rules.AvailabilityInput{
				MentorID: &mentorID, DayOfWeek: &weekday, StartTime: &start, EndTime: &end, IsActive: &active,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&mentorID, "mentor", "", "mentor id; omit for a global schedule")
	f.StringVar(&day, "day", "", "weekday, 0-6 (Sunday=0) or a name such as mon")
	f.StringVar(&start, "start", "", "window start, HH:MM")
	f.StringVar(&end, "end", "", "window end, HH:MM")
	f.BoolVar(&inactive, "inactive", false, "store the rule disabled")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newRulesDeleteCmd(a *app) *cobra.Command {
	var mentorRule bool
	cmd := &cobra.Command{
		Use:     "delete ID",
		Short:   "Delete a rule",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mentorRule {
				return a.rules.DeleteMentorAvailability(cmd.Context(), args[0])
			}
			return a.rules.DeleteSchedule(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVar(&mentorRule, "mentor", false, "the id is a mentor availability rule")
	return cmd
}

// parseWeekday accepts 0-6 or an English day name or prefix of at least three letters.
func parseWeekday(raw string) (int, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	if len(raw) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.HasPrefix(strings.ToLower(d.String()), raw) {
				return int(d), nil
			}
		}
	}
	return 0, fmt.Errorf("invalid --day %q", raw)
}
