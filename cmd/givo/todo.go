package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:     "todo",
	Aliases: []string{"task"},
	Short:   "Manage todos",
}

var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			task, err := a.Tasks.Add(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Created todo: %s\n", shortID(task.ID))
			return nil
		})
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos, newest first",
	RunE:  runTodoList,
}

var todoToggleCmd = &cobra.Command{
	Use:   "toggle [todo-id]",
	Short: "Mark a todo done, or not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			task, err := findTask(a.Tasks.Tasks(), args[0])
			if err != nil {
				return err
			}
			if err := a.Tasks.Toggle(ctx, task.ID); err != nil {
				return err
			}
			state := "done"
			if task.Completed {
				state = "not done"
			}
			fmt.Printf("Marked %s as %s\n", shortID(task.ID), state)
			return nil
		})
	},
}

var todoRemoveCmd = &cobra.Command{
	Use:     "rm [todo-id]",
	Aliases: []string{"remove"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			task, err := findTask(a.Tasks.Tasks(), args[0])
			if err != nil {
				return err
			}
			if err := a.Tasks.Remove(ctx, task.ID); err != nil {
				return err
			}
			fmt.Printf("Removed todo: %s\n", task.Title)
			return nil
		})
	},
}

var todoPending bool

func init() {
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoToggleCmd, todoRemoveCmd)
	todoListCmd.Flags().BoolVar(&todoPending, "pending", false, "Only show todos that are not done")
}

func runTodoList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if a.LoadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s Showing the last saved copy.\n", apperr.Message(a.LoadErr))
		}

		tasks := a.Tasks.Tasks()
		if todoPending {
			pending := make([]models.Task, 0, len(tasks))
			for _, t := range tasks {
				if !t.Completed {
					pending = append(pending, t)
				}
			}
			tasks = pending
		}
		if len(tasks) == 0 {
			fmt.Println("No todos found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDONE\tTITLE\tCREATED")
		for _, t := range tasks {
			done := " "
			if t.Completed {
				done = "x"
			}
			fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\n", shortID(t.ID), done, truncate(t.Title, 50), t.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	})
}

// findTask resolves a full id or a unique short id.
func findTask(tasks []models.Task, ref string) (models.Task, error) {
	var matches []models.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if matchesShortID(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Task{}, apperr.Validation("no todo with id %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, apperr.Validation("id %s is ambiguous", ref)
	}
}
