package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebmorris/pacer/internal/cli/formatter"
	"github.com/calebmorris/pacer/internal/domain"
)

func newLogCmd(app *App) *cobra.Command {
	var task, day string
	var minutes int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log minutes worked on a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, task)
			if err != nil {
				return err
			}
			updated, err := app.Logs.LogMinutes(ctx, id, day, minutes)
			if err != nil {
				return err
			}

			fmt.Printf("Logged %s on %s (total %s)  %s\n",
				formatter.FormatMinutes(minutes),
				updated.Title,
				formatter.FormatMinutes(updated.ActualTotalMin),
				formatter.RiskBadge(updated.Forecast.Risk))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task ID, prefix or title")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes to log")
	cmd.Flags().StringVar(&day, "day", "", "Day to log against (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("minutes")

	cmd.AddCommand(newLogListCmd(app))
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var task, day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var entries []domain.DayLog
			switch {
			case task != "":
				id, err := resolveTaskID(ctx, app, task)
				if err != nil {
					return err
				}
				logs, err := app.Logs.ListByTask(ctx, id)
				if err != nil {
					return err
				}
				entries = logs
			default:
				logs, err := app.Logs.ListByDay(ctx, day)
				if err != nil {
					return err
				}
				entries = logs
			}

			if len(entries) == 0 {
				fmt.Println("No log entries.")
				return nil
			}

			headers := []string{"DAY", "TASK", "MINUTES"}
			rows := make([][]string, 0, len(entries))
			total := 0
			for _, e := range entries {
				rows = append(rows, []string{
					e.Day,
					formatter.Dim(e.TaskID[:8]),
					formatter.FormatMinutes(e.Minutes),
				})
				total += e.Minutes
			}
			fmt.Println(formatter.RenderTable(headers, rows))
			fmt.Printf("Total %s\n", formatter.Bold(formatter.FormatMinutes(total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Filter by task ID, prefix or title")
	cmd.Flags().StringVar(&day, "day", "", "Filter by day (YYYY-MM-DD, default today)")
	return cmd
}
