package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/schedule"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"sched"},
	Short:   "Manage meetings, events and holidays",
}

var schedAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a schedule",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseWhen(schedStart)
		if err != nil {
			return err
		}
		end := start.Add(time.Hour)
		if schedEnd != "" {
			if end, err = parseWhen(schedEnd); err != nil {
				return err
			}
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			sc, err := a.Schedules.Create(schedule.Draft{
				Name:          strings.Join(args, " "),
				Start:         start,
				End:           end,
				Tag:           models.ScheduleTag(schedTag),
				LocationType:  models.LocationType(schedLocation),
				LocationLabel: schedPlace,
				LocationURL:   schedURL,
				Color:         schedColor,
				Notes:         schedNotes,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled: %s %s (%s)\n", sc.Name, sc.Start.Local().Format("2006-01-02 15:04"), shortID(sc.ID))
			return nil
		})
	},
}

var schedListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List schedules, optionally matching a name or tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !schedule.ValidSort(schedSort) {
			return apperr.Validation("sort by date, name, tag or color, not %q", schedSort)
		}
		q := schedule.Query{
			Text: strings.Join(args, " "),
			Tag:  models.ScheduleTag(schedTag),
			Sort: schedSort,
		}
		if q.Tag != "" && !q.Tag.Valid() {
			return apperr.Validation("unknown tag %q", schedTag)
		}
		if schedDay != "" {
			day, err := parseWhen(schedDay)
			if err != nil {
				return err
			}
			q.Day = day
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return printSchedules(a.Schedules.Search(q), time.Now())
		})
	},
}

var schedDeleteCmd = &cobra.Command{
	Use:   "delete [schedule-id]",
	Short: "Delete a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			sc, err := findSchedule(a.Schedules.Schedules(), args[0])
			if err != nil {
				return err
			}
			if err := a.Schedules.Delete(sc.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted schedule: %s\n", sc.Name)
			return nil
		})
	},
}

var (
	schedStart    string
	schedEnd      string
	schedTag      string
	schedLocation string
	schedPlace    string
	schedURL      string
	schedColor    string
	schedNotes    string
	schedDay      string
	schedSort     string
)

func init() {
	scheduleCmd.AddCommand(schedAddCmd, schedListCmd, schedDeleteCmd)

	schedAddCmd.Flags().StringVar(&schedStart, "start", "", "Start time (YYYY-MM-DD HH:MM)")
	schedAddCmd.Flags().StringVar(&schedEnd, "end", "", "End time (default: one hour after start)")
	schedAddCmd.Flags().StringVar(&schedTag, "tag", "", "meeting, event or holiday (default meeting)")
	schedAddCmd.Flags().StringVar(&schedLocation, "location", "", "online or offline (default online)")
	schedAddCmd.Flags().StringVar(&schedPlace, "place", "", "Location label, e.g. Office")
	schedAddCmd.Flags().StringVar(&schedURL, "url", "", "Meeting link for online schedules")
	schedAddCmd.Flags().StringVar(&schedColor, "color", "", "Display color")
	schedAddCmd.Flags().StringVar(&schedNotes, "notes", "", "Free-form notes")
	_ = schedAddCmd.MarkFlagRequired("start")

	schedListCmd.Flags().StringVar(&schedTag, "tag", "", "Only this tag")
	schedListCmd.Flags().StringVar(&schedDay, "day", "", "Only schedules starting on this day (YYYY-MM-DD)")
	schedListCmd.Flags().StringVar(&schedSort, "sort", schedule.SortDate, "Sort by date, name, tag or color")
}

func printSchedules(schedules []models.Schedule, now time.Time) error {
	if len(schedules) == 0 {
		fmt.Println("No schedules found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTAG\tSTART\tEND\tWHERE\tSTATUS")
	for _, sc := range schedules {
		where := sc.LocationLabel
		if where == "" {
			where = string(sc.LocationType)
		}
		status := "upcoming"
		if sc.IsPast(now) {
			status = "past"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(sc.ID), truncate(sc.Name, 30), sc.Tag,
			sc.Start.Local().Format("2006-01-02 15:04"), sc.End.Local().Format("2006-01-02 15:04"),
			truncate(where, 20), status)
	}
	return w.Flush()
}

func findSchedule(schedules []models.Schedule, ref string) (models.Schedule, error) {
	var matches []models.Schedule
	for _, sc := range schedules {
		if sc.ID == ref {
			return sc, nil
		}
		if matchesShortID(sc.ID, ref) {
			matches = append(matches, sc)
		}
	}
	switch len(matches) {
	case 0:
		return models.Schedule{}, apperr.Validation("no schedule with id %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Schedule{}, apperr.Validation("id %s is ambiguous", ref)
	}
}
