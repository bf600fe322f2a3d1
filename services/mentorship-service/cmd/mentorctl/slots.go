package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newSlotsCmd(a *app) *cobra.Command {
	var (
		date   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the start times global schedules allow on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.parseDate(date)
			if err != nil {
				return err
			}
			times, err := a.resolver.AvailableAppointmentTimes(cmd.Context(), day)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(times)
			}
			for _, t := range times {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "calendar date, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	return cmd
}

func newMentorSlotsCmd(a *app) *cobra.Command {
	var (
		date   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "mentor-slots",
		Short: "Print each mentor's start times on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := a.parseDate(date)
			if err != nil {
				return err
			}
			byMentor, err := a.resolver.MentorTimeSlots(cmd.Context(), day)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(byMentor)
			}
			mentors := make([]string, 0, len(byMentor))
			for id := range byMentor {
				mentors = append(mentors, id)
			}
			sort.Strings(mentors)
			for _, id := range mentors {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", id, strings.Join(byMentor[id], " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "calendar date, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object keyed by mentor id")
	return cmd
}
