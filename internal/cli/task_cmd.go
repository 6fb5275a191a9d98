package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/calebmorris/pacer/internal/cli/formatter"
	"github.com/calebmorris/pacer/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskDoneCmd(app),
		newTaskArchiveCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, deadline, start string
	var estimate, optimistic, pessimistic, weight int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without --title, fall back to an interactive form when a
			// terminal is attached.
			if title == "" {
				if !app.interactive() {
					return fmt.Errorf("--title is required (or run interactively)")
				}
				var estimateStr, weightStr string
				if err := taskAddForm(&title, &estimateStr, &deadline, &weightStr).Run(); err != nil {
					return err
				}
				estimate, _ = strconv.Atoi(estimateStr)
				if weightStr != "" {
					weight, _ = strconv.Atoi(weightStr)
				}
			}

			t := &domain.Task{
				Title:             title,
				EstimatedMin:      estimate,
				UncertaintyWeight: weight,
			}
			if optimistic > 0 {
				t.OptimisticMin = &optimistic
			}
			if pessimistic > 0 {
				t.PessimisticMin = &pessimistic
			}
			if deadline != "" {
				d, err := time.ParseInLocation(domain.DayLayout, deadline, time.Local)
				if err != nil {
					return fmt.Errorf("invalid deadline %q: %w", deadline, err)
				}
				// Due at end of that day.
				d = d.AddDate(0, 0, 1).Add(-time.Second)
				t.Deadline = &d
			}
			if start != "" {
				s, err := time.ParseInLocation(domain.DayLayout, start, time.Local)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				t.PlannedStartAt = &s
			}

			if err := app.Tasks.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s, estimate %s)\n",
				t.Title, t.ID[:8], formatter.FormatMinutes(t.EstimatedMin))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Most likely estimate in minutes")
	cmd.Flags().IntVar(&optimistic, "optimistic", 0, "Optimistic bound in minutes")
	cmd.Flags().IntVar(&pessimistic, "pessimistic", 0, "Pessimistic bound in minutes")
	cmd.Flags().IntVar(&weight, "weight", 0, "Uncertainty weight 1-5 (how strongly the estimate dominates)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			headers := []string{"ID", "TITLE", "STATUS", "ESTIMATE", "LOGGED", "DUE"}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				due := formatter.Dim("--")
				if t.Deadline != nil {
					due = formatter.RelativeDateStyled(*t.Deadline)
				}
				rows = append(rows, []string{
					formatter.Dim(t.ID[:8]),
					formatter.Bold(t.Title),
					formatter.StatusPill(t.Status),
					formatter.FormatMinutes(t.EstimatedMin),
					formatter.FormatMinutes(t.ActualTotalMin),
					due,
				})
			}
			fmt.Println(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived tasks")
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Show one task with its forecast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Forecasts.RefreshTask(ctx, id, time.Now())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatTaskDetail(t))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.MarkDone(ctx, id); err != nil {
				return err
			}
			fmt.Println("Done.")
			return nil
		},
	}
}

func newTaskArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <task>",
		Short: "Archive a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Println("Archived.")
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Delete a task and its logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				t, err := app.Tasks.GetByID(ctx, id)
				if err != nil {
					return err
				}
				if t.Status != domain.TaskArchived {
					return fmt.Errorf("task must be archived before deletion (use --force to override)")
				}
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even when not archived")
	return cmd
}
