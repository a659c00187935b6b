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
	"github.com/fentz26/givo/internal/media"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/workspace"
	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Manage workspace lists",
}

var wsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an empty list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			l, err := a.Workspace.CreateList(strings.Join(args, " "), wsDescription)
			if err != nil {
				return err
			}
			fmt.Printf("Created list: %s (%s)\n", l.Name, shortID(l.ID))
			return nil
		})
	},
}

var wsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a text file, or --text, as a new list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			var (
				l   models.WorkspaceList
				err error
			)
			switch {
			case len(args) == 1:
				l, err = a.Workspace.ImportFile(args[0])
			case wsText != "":
				l, err = a.Workspace.ImportText(wsName, wsText)
			default:
				return apperr.Validation("give a file or --text")
			}
			if err != nil {
				return err
			}
			fmt.Printf("Imported list: %s (%s)\n", l.Name, shortID(l.ID))
			return nil
		})
	},
}

var wsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspace lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return printLists(a.Workspace.Search(workspace.Query{Filter: wsFilter}))
		})
	},
}

var wsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search lists by name and description",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return printLists(a.Workspace.Search(workspace.Query{
				Text:   strings.Join(args, " "),
				Filter: wsFilter,
				Ranked: wsRanked,
			}))
		})
	},
}

var wsShowCmd = &cobra.Command{
	Use:   "show [list-id]",
	Short: "Show a list and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			l, err := findList(a.Workspace.Lists(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", l.Name)
			if l.Description != "" {
				fmt.Printf("  %s\n", l.Description)
			}
			fmt.Printf("  Owner: %s  Created: %s\n\n", l.Owner, l.CreatedAt.Local().Format("2006-01-02 15:04"))
			if len(l.Items) == 0 {
				fmt.Println("  (no items)")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "  ID\tTITLE\tDETAIL")
			for _, it := range l.Items {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", shortID(it.ID), truncate(it.Title, 40), it.Description)
			}
			return w.Flush()
		})
	},
}

var wsRenameCmd = &cobra.Command{
	Use:   "rename [list-id] [name]",
	Short: "Rename a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			l, err := findList(a.Workspace.Lists(), args[0])
			if err != nil {
				return err
			}
			return a.Workspace.Rename(l.ID, strings.Join(args[1:], " "))
		})
	},
}

var wsDeleteCmd = &cobra.Command{
	Use:   "delete [list-id]",
	Short: "Delete a whole list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			l, err := findList(a.Workspace.Lists(), args[0])
			if err != nil {
				return err
			}
			a.Workspace.DeleteList(l.ID)
			fmt.Printf("Deleted list: %s\n", l.Name)
			return nil
		})
	},
}

var wsRecordCmd = &cobra.Command{
	Use:   "record [audio|video]",
	Short: "Record a (simulated) voice or video note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var recorder media.Recorder
		switch args[0] {
		case "audio":
			recorder = media.NewAudioRecorder(wsDuration)
		case "video":
			recorder = media.NewVideoRecorder(wsDuration)
		default:
			return apperr.Validation("record audio or video, not %q", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			listID := ""
			if wsList != "" {
				l, err := findList(a.Workspace.Lists(), wsList)
				if err != nil {
					return err
				}
				listID = l.ID
			}
			fmt.Printf("Recording %s...\n", args[0])
			item, err := a.Workspace.Record(ctx, recorder, listID, wsName)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s: %s\n", item.Title, item.Description)
			return nil
		})
	},
}

var (
	wsDescription string
	wsText        string
	wsName        string
	wsFilter      string
	wsRanked      bool
	wsList        string
	wsDuration    time.Duration
)

func init() {
	workspaceCmd.AddCommand(wsCreateCmd, wsImportCmd, wsListCmd, wsSearchCmd, wsShowCmd, wsRenameCmd, wsDeleteCmd, wsRecordCmd)

	wsCreateCmd.Flags().StringVar(&wsDescription, "desc", "", "List description")

	wsImportCmd.Flags().StringVar(&wsText, "text", "", "Text to import instead of a file")
	wsImportCmd.Flags().StringVar(&wsName, "name", "", "List name (default \"Imported\")")

	for _, c := range []*cobra.Command{wsListCmd, wsSearchCmd} {
		c.Flags().StringVar(&wsFilter, "filter", workspace.FilterAll, "Named filter: all, recent")
	}
	wsSearchCmd.Flags().BoolVar(&wsRanked, "ranked", false, "Order by match quality instead of list order")

	wsRecordCmd.Flags().StringVar(&wsList, "list", "", "Add to this list (default: a new Media list)")
	wsRecordCmd.Flags().StringVar(&wsName, "title", "", "Item title")
	wsRecordCmd.Flags().DurationVar(&wsDuration, "duration", 0, "Recording length")
}

func printLists(lists []models.WorkspaceList) error {
	if len(lists) == 0 {
		fmt.Println("No lists found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tITEMS\tCREATED\tDESCRIPTION")
	for _, l := range lists {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			shortID(l.ID), truncate(l.Name, 30), len(l.Items),
			l.CreatedAt.Local().Format("2006-01-02"), truncate(l.Description, 40))
	}
	return w.Flush()
}

func findList(lists []models.WorkspaceList, ref string) (models.WorkspaceList, error) {
	var matches []models.WorkspaceList
	for _, l := range lists {
		if l.ID == ref {
			return l, nil
		}
		if matchesShortID(l.ID, ref) {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return models.WorkspaceList{}, apperr.Validation("no list with id %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.WorkspaceList{}, apperr.Validation("id %s is ambiguous", ref)
	}
}
